package domain

import (
	"errors"
	"fmt"
)

type ToolType string
type ToolID string

const (
	ToolTypePainting ToolType = "painting"
	ToolTypeConcrete ToolType = "concrete"
	ToolTypePlumbing ToolType = "plumbing"
	ToolTypeWoodwork ToolType = "woodwork"
	ToolTypeYardwork ToolType = "yardwork"
)

// KnownToolTypes returns every tool category in declaration order.
func KnownToolTypes() []ToolType {
	return []ToolType{
		ToolTypePainting,
		ToolTypeConcrete,
		ToolTypePlumbing,
		ToolTypeWoodwork,
		ToolTypeYardwork,
	}
}

func (t ToolType) Valid() bool {
	switch t {
	case ToolTypePainting, ToolTypeConcrete, ToolTypePlumbing, ToolTypeWoodwork, ToolTypeYardwork:
		return true
	default:
		return false
	}
}

// Tool is a single rentable instance. Tools are passed by value and never
// modified after the fleet is built.
type Tool struct {
	ID    ToolID
	Type  ToolType
	Name  string
	Price float64
}

type CatalogEntry struct {
	Type  ToolType
	Price float64
	Count int
}

func (e CatalogEntry) Validate() error {
	if !e.Type.Valid() {
		return fmt.Errorf("unknown tool type %q", e.Type)
	}
	if e.Price <= 0 {
		return fmt.Errorf("tools[%s].price must be positive", e.Type)
	}
	if e.Count < 0 {
		return fmt.Errorf("tools[%s].count must not be negative", e.Type)
	}

	return nil
}

// ToolCatalog is the fixed set of tool types a store offers, with their
// per-day prices and instance counts.
type ToolCatalog struct {
	entries []CatalogEntry
}

func NewToolCatalog(entries []CatalogEntry) (ToolCatalog, error) {
	if errs := validateCatalog(entries); len(errs) > 0 {
		return ToolCatalog{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}

	copied := make([]CatalogEntry, len(entries))
	copy(copied, entries)

	return ToolCatalog{entries: copied}, nil
}

func (c ToolCatalog) Entries() []CatalogEntry {
	entries := make([]CatalogEntry, len(c.entries))
	copy(entries, c.entries)
	return entries
}

func (c ToolCatalog) Price(toolType ToolType) (float64, bool) {
	for _, entry := range c.entries {
		if entry.Type == toolType {
			return entry.Price, true
		}
	}
	return 0, false
}

func (c ToolCatalog) FleetSize() int {
	total := 0
	for _, entry := range c.entries {
		total += entry.Count
	}
	return total
}

// BuildFleet materializes every tool instance, grouped by type in catalog
// order and numbered from 1 within each type.
func (c ToolCatalog) BuildFleet() []Tool {
	fleet := make([]Tool, 0, c.FleetSize())
	for _, entry := range c.entries {
		for i := 1; i <= entry.Count; i++ {
			fleet = append(fleet, Tool{
				ID:    ToolID(fmt.Sprintf("%s-%d", entry.Type, i)),
				Type:  entry.Type,
				Name:  fmt.Sprintf("%s tool %d", entry.Type, i),
				Price: entry.Price,
			})
		}
	}
	return fleet
}

func validateCatalog(entries []CatalogEntry) []error {
	if len(entries) == 0 {
		return []error{errors.New("at least one tool type is required")}
	}

	var errs []error
	seen := make(map[ToolType]struct{}, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, ok := seen[entry.Type]; ok {
			errs = append(errs, fmt.Errorf("duplicate tool type %q", entry.Type))
			continue
		}
		seen[entry.Type] = struct{}{}
	}

	return errs
}
