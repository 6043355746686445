package domain

import (
	"errors"
	"fmt"
	"strings"
)

// CustomerGroup is Count customers sharing one category profile.
type CustomerGroup struct {
	Category CustomerCategory
	Count    int
	Profile  Profile
}

type SimulationSettings struct {
	Days             int
	Seed             uint64
	Seeded           bool
	ShuffleCustomers bool
	StrictInvariants bool
}

type Config struct {
	Tools      []CatalogEntry
	Customers  []CustomerGroup
	Simulation SimulationSettings
}

func (c Config) Validate() error {
	errs := validateCatalog(c.Tools)

	if len(c.Customers) == 0 {
		errs = append(errs, errors.New("at least one customer category is required"))
	}
	seen := make(map[CustomerCategory]struct{}, len(c.Customers))
	for _, group := range c.Customers {
		name := strings.TrimSpace(string(group.Category))
		if name == "" {
			errs = append(errs, errors.New("customer category name is required"))
			continue
		}
		if _, ok := seen[group.Category]; ok {
			errs = append(errs, fmt.Errorf("duplicate customer category %q", group.Category))
			continue
		}
		seen[group.Category] = struct{}{}

		if group.Count < 0 {
			errs = append(errs, fmt.Errorf("customers[%s].count must not be negative", group.Category))
		}
		if err := group.Profile.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("customers[%s]: %w", group.Category, err))
		}
	}

	if c.Simulation.Days <= 0 {
		errs = append(errs, errors.New("simulation.num_days must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}

	return nil
}
