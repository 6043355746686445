package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bnema/toolrental/internal/domain"
	"github.com/bnema/toolrental/internal/ports"
	jsoniter "github.com/json-iterator/go"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ConfigPathKey     = "config_path"
	defaultConfigFile = "toolsim.toml"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

var (
	ErrConfigNotFound    = errors.New("store configuration not found")
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	// looseJSON keeps numbers as written so large seeds survive the
	// normalization round trip.
	looseJSON = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}.Froze()
	strictJSON = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		DisallowUnknownFields:  true,
	}.Froze()
)

type Repository struct {
	path   string
	format Format
}

var _ ports.ConfigRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	cfg.SetDefault(ConfigPathKey, defaultConfigFile)

	configPath := strings.TrimSpace(cfg.GetString(ConfigPathKey))
	if configPath == "" {
		return nil, errors.New("config path is empty")
	}
	configPath, err := normalizeConfigPath(configPath)
	if err != nil {
		return nil, err
	}

	format, err := FormatFor(configPath)
	if err != nil {
		return nil, err
	}

	return &Repository{path: configPath, format: format}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Load reads and decodes the store configuration. Value checks are left to
// domain.Config.Validate so that command-line overrides apply first.
func (r *Repository) Load(ctx context.Context) (domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, r.path)
		}
		return domain.Config{}, fmt.Errorf("read config file: %w", err)
	}

	file, err := decode(r.format, data)
	if err != nil {
		return domain.Config{}, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidConfiguration, r.path, err)
	}
	file.applyDefaults()
	if err := file.validateVersion(); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfiguration, err)
	}

	return fromSchema(file), nil
}

// Encode renders cfg in the store configuration file format.
func Encode(cfg domain.Config, format Format) ([]byte, error) {
	file := toSchema(cfg)

	switch format {
	case FormatTOML:
		data, err := toml.Marshal(file)
		if err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// decode reads data into the file schema. Keys the schema does not know are
// rejected by name. The flat layout with singular "tool" and "customer"
// tables is accepted and rewritten first.
func decode(format Format, data []byte) (fileSchema, error) {
	var raw map[string]any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return fileSchema{}, err
		}
	case FormatJSON:
		if err := looseJSON.Unmarshal(data, &raw); err != nil {
			return fileSchema{}, err
		}
	default:
		return fileSchema{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := normalizeLayout(raw); err != nil {
		return fileSchema{}, err
	}

	var file fileSchema
	switch format {
	case FormatTOML:
		normalized, err := toml.Marshal(raw)
		if err != nil {
			return fileSchema{}, err
		}
		decoder := toml.NewDecoder(bytes.NewReader(normalized))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			var strictErr *toml.StrictMissingError
			if errors.As(err, &strictErr) {
				return fileSchema{}, unknownKeysError(strictErr)
			}
			return fileSchema{}, err
		}
	case FormatJSON:
		normalized, err := looseJSON.Marshal(raw)
		if err != nil {
			return fileSchema{}, err
		}
		if err := strictJSON.Unmarshal(normalized, &file); err != nil {
			return fileSchema{}, err
		}
	}

	return file, nil
}

func normalizeLayout(raw map[string]any) error {
	if tools, ok := raw["tool"]; ok {
		if _, dup := raw["tools"]; dup {
			return errors.New(`both "tool" and "tools" are set`)
		}
		raw["tools"] = tools
		delete(raw, "tool")
	}

	customer, ok := raw["customer"]
	if !ok {
		return nil
	}
	if _, dup := raw["customers"]; dup {
		return errors.New(`both "customer" and "customers" are set`)
	}
	table, ok := customer.(map[string]any)
	if !ok {
		return errors.New(`"customer" must be a table`)
	}

	customers := map[string]any{}
	categories := map[string]any{}
	for key, value := range table {
		if key == "max_num_tools" {
			customers[key] = value
			continue
		}
		categories[key] = value
	}
	customers["categories"] = categories
	raw["customers"] = customers
	delete(raw, "customer")

	return nil
}

func unknownKeysError(err *toml.StrictMissingError) error {
	keys := make([]string, 0, len(err.Errors))
	for _, decodeErr := range err.Errors {
		keys = append(keys, strings.Join(decodeErr.Key(), "."))
	}

	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

func normalizeConfigPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func fromSchema(file fileSchema) domain.Config {
	cfg := domain.Config{
		Simulation: domain.SimulationSettings{
			Days:             file.Simulation.NumDays,
			ShuffleCustomers: file.Simulation.ShuffleCustomers,
			StrictInvariants: file.Simulation.Strict,
		},
	}
	if file.Simulation.Seed != nil {
		cfg.Simulation.Seed = *file.Simulation.Seed
		cfg.Simulation.Seeded = true
	}

	for _, name := range toolOrder(file.Tools) {
		tool := file.Tools[name]
		count := defaultToolCount
		if tool.Count != nil {
			count = *tool.Count
		}
		cfg.Tools = append(cfg.Tools, domain.CatalogEntry{
			Type:  domain.ToolType(name),
			Price: tool.Price,
			Count: count,
		})
	}

	categories := make([]string, 0, len(file.Customers.Categories))
	for name := range file.Customers.Categories {
		categories = append(categories, name)
	}
	slices.Sort(categories)

	for _, name := range categories {
		category := file.Customers.Categories[name]
		count := defaultCustomerCount
		if category.Count != nil {
			count = *category.Count
		}
		maxTools := category.MaxNumTools
		if maxTools == 0 {
			maxTools = file.Customers.MaxNumTools
		}
		cfg.Customers = append(cfg.Customers, domain.CustomerGroup{
			Category: domain.CustomerCategory(name),
			Count:    count,
			Profile: domain.Profile{
				PreferredToolCounts: slices.Clone(category.NumTools),
				PreferredDurations:  slices.Clone(category.NumNights),
				MaxToolsAllowed:     maxTools,
			},
		})
	}

	return cfg
}

// toolOrder lists known tool types in declaration order, followed by any
// unknown names sorted so validation reports them deterministically.
func toolOrder(tools map[string]toolSchema) []string {
	names := make([]string, 0, len(tools))
	for _, toolType := range domain.KnownToolTypes() {
		if _, ok := tools[string(toolType)]; ok {
			names = append(names, string(toolType))
		}
	}

	var unknown []string
	for name := range tools {
		if !domain.ToolType(name).Valid() {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)

	return append(names, unknown...)
}

func toSchema(cfg domain.Config) fileSchema {
	file := fileSchema{
		Version: currentSchemaVersion,
		Simulation: simulationSchema{
			NumDays:          cfg.Simulation.Days,
			ShuffleCustomers: cfg.Simulation.ShuffleCustomers,
			Strict:           cfg.Simulation.StrictInvariants,
		},
		Tools: make(map[string]toolSchema, len(cfg.Tools)),
		Customers: customersSchema{
			Categories: make(map[string]customerCategorySchema, len(cfg.Customers)),
		},
	}
	if cfg.Simulation.Seeded {
		seed := cfg.Simulation.Seed
		file.Simulation.Seed = &seed
	}

	for _, entry := range cfg.Tools {
		count := entry.Count
		file.Tools[string(entry.Type)] = toolSchema{Price: entry.Price, Count: &count}
	}
	for _, group := range cfg.Customers {
		count := group.Count
		file.Customers.Categories[string(group.Category)] = customerCategorySchema{
			Count:       &count,
			MaxNumTools: group.Profile.MaxToolsAllowed,
			NumTools:    slices.Clone(group.Profile.PreferredToolCounts),
			NumNights:   slices.Clone(group.Profile.PreferredDurations),
		}
	}

	return file
}
