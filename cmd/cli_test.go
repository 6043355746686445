package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	configfile "github.com/bnema/toolrental/internal/adapters/config/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFixture = `version = 1

[simulation]
num_days = 3
seed = 1

[tools.painting]
price = 5.0
count = 4

[customers]
max_num_tools = 2

[customers.categories.casual]
count = 1
num_tools = [2]
num_nights = [2]
`

const storeFixture = `{
  "simulation": {"num_days": 35, "seed": 2024, "shuffle_customers": true},
  "tools": {
    "painting": {"price": 5},
    "concrete": {"price": 25},
    "plumbing": {"price": 12.5},
    "woodwork": {"price": 8},
    "yardwork": {"price": 14}
  },
  "customers": {
    "max_num_tools": 3,
    "categories": {
      "casual": {"count": 4, "num_tools": [1, 2], "num_nights": [1, 2]},
      "business": {"count": 2, "num_tools": [3], "num_nights": [7]},
      "regular": {"count": 4, "num_tools": [1, 2, 3], "num_nights": [3, 4, 5]}
    }
  }
}`

func TestSimulateJSONOutput(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	stdout, _, err := executeCLI(t, home, "simulate", "--config", configPath, "--json")
	require.NoError(t, err)

	var report struct {
		Seed      uint64
		Days      int
		Revenue   float64
		Available []struct{ ID string }
		Returned  []struct{ CustomerID string }
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, uint64(1), report.Seed)
	assert.Equal(t, 3, report.Days)
	assert.Equal(t, 40.0, report.Revenue)
	assert.Len(t, report.Available, 2)
	require.Len(t, report.Returned, 1)
	assert.Equal(t, "casual-1", report.Returned[0].CustomerID)
}

func TestSimulateSummaryOutput(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	stdout, _, err := executeCLI(t, home, "simulate", configPath, "--customers")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tool Rental Store")
	assert.Contains(t, stdout, "revenue: $40.00")
	assert.Contains(t, stdout, "Inventory (2 of 4 available)")
	assert.Contains(t, stdout, "casual-1 (2/2 tools)")
}

func TestSimulateDaysOverride(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	stdout, _, err := executeCLI(t, home, "simulate", configPath, "--days", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "days: 2")
	assert.Contains(t, stdout, "revenue: $20.00")
}

func TestSimulateIsReproducibleWithSeed(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.json", storeFixture)

	first, _, err := executeCLI(t, home, "simulate", configPath, "--json", "--seed", "7")
	require.NoError(t, err)
	second, _, err := executeCLI(t, home, "simulate", configPath, "--json", "--seed", "7")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "\"Seed\": 7")
}

func TestSimulateUsesConfigFromEnvironment(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)
	t.Setenv("TOOLSIM_CONFIG", configPath)

	stdout, _, err := executeCLI(t, home, "simulate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "revenue: $40.00")
}

func TestSettingsResolveConfigPathFromEnvironment(t *testing.T) {
	t.Setenv("TOOLSIM_CONFIG", "/srv/toolsim/store.toml")

	settings := newSettings()
	assert.Equal(t, "/srv/toolsim/store.toml", settings.GetString(configfile.ConfigPathKey))
}

func TestSimulateWithProgress(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	stdout, _, err := executeCLI(t, home, "simulate", configPath, "--progress")
	require.NoError(t, err)
	assert.Contains(t, stdout, "revenue: $40.00")
}

func TestSimulateWritesReport(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)
	reportPath := filepath.Join(home, "out", "report.toml")

	_, stderr, err := executeCLI(t, home, "simulate", configPath, "--report", reportPath, "--strict")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Report written to "+reportPath)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "revenue = 40.0")
	assert.Contains(t, string(data), "[[returned]]")
}

func TestSimulateRejectsInvalidConfiguration(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", `
[simulation]
num_days = 3

[tools.painting]
price = -1.0

[customers.categories.casual]
num_tools = [1]
num_nights = [1]
`)

	_, _, err := executeCLI(t, home, "simulate", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "tools[painting].price must be positive")
	assert.Contains(t, err.Error(), "max_num_tools must be positive")
}

func TestSimulateMissingConfiguration(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "simulate", filepath.Join(home, "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store configuration not found")
}

func TestSimulateRejectsInvalidLogLevel(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	_, _, err := executeCLI(t, home, "simulate", configPath, "--log-level", "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level \"chatty\"")
}

func TestSimulateLogsToStderr(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	_, stderr, err := executeCLI(t, home, "simulate", configPath, "--log-level", "info", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, stderr, "\"msg\":\"simulation finished\"")
	assert.Contains(t, stderr, "\"seed\":1")
}

func TestConfigValidate(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.json", storeFixture)

	stdout, _, err := executeCLI(t, home, "config", "validate", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration OK: "+configPath)
	assert.Contains(t, stdout, "tool types: 5 (fleet 20)")
	assert.Contains(t, stdout, "customer categories: 3 (customers 10)")
	assert.Contains(t, stdout, "days: 35")
}

func TestConfigShowJSON(t *testing.T) {
	home := t.TempDir()
	configPath := writeFixture(t, home, "toolsim.toml", scenarioFixture)

	stdout, _, err := executeCLI(t, home, "config", "show", "--config", configPath, "--format", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"num_days\": 3")
	assert.Contains(t, stdout, "\"painting\"")
}

func TestVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFixture(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}
