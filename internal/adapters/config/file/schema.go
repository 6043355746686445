package file

import "fmt"

const currentSchemaVersion = 1

const (
	defaultToolCount     = 4
	defaultCustomerCount = 1
)

type fileSchema struct {
	Version    int                   `toml:"version" json:"version"`
	Simulation simulationSchema      `toml:"simulation" json:"simulation"`
	Tools      map[string]toolSchema `toml:"tools" json:"tools"`
	Customers  customersSchema       `toml:"customers" json:"customers"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type simulationSchema struct {
	NumDays          int     `toml:"num_days" json:"num_days"`
	Seed             *uint64 `toml:"seed,omitempty" json:"seed,omitempty"`
	ShuffleCustomers bool    `toml:"shuffle_customers" json:"shuffle_customers"`
	Strict           bool    `toml:"strict" json:"strict"`
}

type toolSchema struct {
	Price float64 `toml:"price" json:"price"`
	Count *int    `toml:"count,omitempty" json:"count,omitempty"`
}

type customersSchema struct {
	MaxNumTools int                               `toml:"max_num_tools" json:"max_num_tools"`
	Categories  map[string]customerCategorySchema `toml:"categories" json:"categories"`
}

type customerCategorySchema struct {
	Count       *int  `toml:"count,omitempty" json:"count,omitempty"`
	MaxNumTools int   `toml:"max_num_tools,omitempty" json:"max_num_tools,omitempty"`
	NumTools    []int `toml:"num_tools" json:"num_tools"`
	NumNights   []int `toml:"num_nights" json:"num_nights"`
}
