package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/toolrental/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlFixture = `version = 1

[simulation]
num_days = 35
seed = 42
shuffle_customers = true

[tools.yardwork]
price = 14.0

[tools.painting]
price = 5.0
count = 2

[customers]
max_num_tools = 3

[customers.categories.regular]
count = 4
num_tools = [1, 2, 3]
num_nights = [3, 4, 5]

[customers.categories.business]
count = 2
max_num_tools = 5
num_tools = [3]
num_nights = [7]

[customers.categories.casual]
num_tools = [1, 2]
num_nights = [1, 2]
`

const jsonFixture = `{
  "simulation": {"num_days": 10},
  "tools": {
    "concrete": {"price": 25.5, "count": 1},
    "painting": {"price": 5}
  },
  "customers": {
    "max_num_tools": 2,
    "categories": {
      "casual": {"count": 3, "num_tools": [1], "num_nights": [2]}
    }
  }
}`

func newTestRepository(t *testing.T, name, contents string) *Repository {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}

	cfg := viper.New()
	cfg.Set(ConfigPathKey, path)

	repo, err := NewRepository(cfg)
	require.NoError(t, err)
	return repo
}

func TestRepositoryLoadTOML(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "toolsim.toml", tomlFixture)

	cfg, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.SimulationSettings{Days: 35, Seed: 42, Seeded: true, ShuffleCustomers: true}, cfg.Simulation)
	assert.Equal(t, []domain.CatalogEntry{
		{Type: domain.ToolTypePainting, Price: 5, Count: 2},
		{Type: domain.ToolTypeYardwork, Price: 14, Count: 4},
	}, cfg.Tools)
	assert.Equal(t, []domain.CustomerGroup{
		{Category: "business", Count: 2, Profile: domain.Profile{PreferredToolCounts: []int{3}, PreferredDurations: []int{7}, MaxToolsAllowed: 5}},
		{Category: "casual", Count: 1, Profile: domain.Profile{PreferredToolCounts: []int{1, 2}, PreferredDurations: []int{1, 2}, MaxToolsAllowed: 3}},
		{Category: "regular", Count: 4, Profile: domain.Profile{PreferredToolCounts: []int{1, 2, 3}, PreferredDurations: []int{3, 4, 5}, MaxToolsAllowed: 3}},
	}, cfg.Customers)
	assert.NoError(t, cfg.Validate())
}

func TestRepositoryLoadJSON(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "toolsim.json", jsonFixture)

	cfg, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Simulation.Days)
	assert.False(t, cfg.Simulation.Seeded)
	assert.Equal(t, []domain.CatalogEntry{
		{Type: domain.ToolTypePainting, Price: 5, Count: 4},
		{Type: domain.ToolTypeConcrete, Price: 25.5, Count: 1},
	}, cfg.Tools)
	require.Len(t, cfg.Customers, 1)
	assert.Equal(t, 3, cfg.Customers[0].Count)
	assert.Equal(t, 2, cfg.Customers[0].Profile.MaxToolsAllowed)
}

func TestRepositoryLoadMissingFile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "missing.toml", "")

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestRepositoryLoadMalformedFile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "broken.json", `{"tools": [`)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.ErrorContains(t, err, "decode")
}

func TestRepositoryRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "future.toml", "version = 2\n")

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.ErrorContains(t, err, "unsupported config schema version 2")
}

func TestRepositoryUnknownToolTypeFailsValidation(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "welding.toml", `
[simulation]
num_days = 1

[tools.welding]
price = 3.0

[customers]
max_num_tools = 1

[customers.categories.casual]
num_tools = [1]
num_nights = [1]
`)

	cfg, err := repo.Load(context.Background())
	require.NoError(t, err)

	err = cfg.Validate()
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.ErrorContains(t, err, "unknown tool type \"welding\"")
}

func TestRepositoryLoadFlatLayout(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "storesim.json", `{
  "tool": {"painting": {"price": 5}, "woodwork": {"price": 12.5}},
  "customer": {
    "max_num_tools": 3,
    "casual": {"num_tools": [1, 2], "num_nights": [1, 2]},
    "business": {"num_tools": [3], "num_nights": [7]}
  },
  "simulation": {"num_days": 35}
}`)

	cfg, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 35, cfg.Simulation.Days)
	assert.Equal(t, []domain.CatalogEntry{
		{Type: domain.ToolTypePainting, Price: 5, Count: 4},
		{Type: domain.ToolTypeWoodwork, Price: 12.5, Count: 4},
	}, cfg.Tools)
	assert.Equal(t, []domain.CustomerGroup{
		{Category: "business", Count: 1, Profile: domain.Profile{PreferredToolCounts: []int{3}, PreferredDurations: []int{7}, MaxToolsAllowed: 3}},
		{Category: "casual", Count: 1, Profile: domain.Profile{PreferredToolCounts: []int{1, 2}, PreferredDurations: []int{1, 2}, MaxToolsAllowed: 3}},
	}, cfg.Customers)
	assert.NoError(t, cfg.Validate())
}

func TestRepositoryLoadFlatLayoutTOML(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "storesim.toml", `
[simulation]
num_days = 2
seed = 4611686018427387905

[tool.concrete]
price = 20

[customer]
max_num_tools = 2

[customer.regular]
num_tools = [1]
num_nights = [3]
`)

	cfg, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4611686018427387905), cfg.Simulation.Seed)
	assert.Equal(t, []domain.CatalogEntry{{Type: domain.ToolTypeConcrete, Price: 20, Count: 4}}, cfg.Tools)
	require.Len(t, cfg.Customers, 1)
	assert.Equal(t, domain.CustomerCategory("regular"), cfg.Customers[0].Category)
	assert.Equal(t, 2, cfg.Customers[0].Profile.MaxToolsAllowed)
}

func TestRepositoryRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		contents string
		key      string
	}{
		{
			name:     "toml",
			file:     "typo.toml",
			contents: "[simulation]\nnum_days = 3\nnum_dayz = 4\n",
			key:      "simulation.num_dayz",
		},
		{
			name:     "json",
			file:     "typo.json",
			contents: `{"simulation": {"num_days": 3}, "tools": {"painting": {"price": 5, "colour": "red"}}}`,
			key:      "colour",
		},
		{
			name:     "both layouts",
			file:     "mixed.json",
			contents: `{"tool": {}, "tools": {}}`,
			key:      `"tool"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newTestRepository(t, tt.file, tt.contents)

			_, err := repo.Load(context.Background())
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestRepositoryLoadHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, "toolsim.toml", tomlFixture)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRepositoryRejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	cfg := viper.New()
	cfg.Set(ConfigPathKey, filepath.Join(t.TempDir(), "toolsim.yaml"))

	_, err := NewRepository(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNewRepositoryDefaultsPath(t *testing.T) {
	repo, err := NewRepository(nil)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "toolsim.toml"), repo.Path())
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	source := newTestRepository(t, "toolsim.toml", tomlFixture)
	want, err := source.Load(context.Background())
	require.NoError(t, err)

	for _, format := range []Format{FormatTOML, FormatJSON} {
		data, err := Encode(want, format)
		require.NoError(t, err)

		repo := newTestRepository(t, "encoded."+string(format), string(data))
		got, err := repo.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got, format)
	}

	_, err = Encode(want, "yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
