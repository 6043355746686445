package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type CustomerID string
type CustomerCategory string

const (
	CustomerCategoryCasual   CustomerCategory = "casual"
	CustomerCategoryBusiness CustomerCategory = "business"
	CustomerCategoryRegular  CustomerCategory = "regular"
)

// Profile is a customer's rental preferences. Quantities and durations are
// drawn uniformly from the candidate lists.
type Profile struct {
	PreferredToolCounts []int
	PreferredDurations  []int
	MaxToolsAllowed     int
}

func (p Profile) Validate() error {
	var errs []error
	if len(p.PreferredToolCounts) == 0 {
		errs = append(errs, errors.New("num_tools must list at least one quantity"))
	}
	for _, count := range p.PreferredToolCounts {
		if count <= 0 {
			errs = append(errs, fmt.Errorf("num_tools entry %d must be positive", count))
		}
	}
	if len(p.PreferredDurations) == 0 {
		errs = append(errs, errors.New("num_nights must list at least one duration"))
	}
	for _, days := range p.PreferredDurations {
		if days <= 0 {
			errs = append(errs, fmt.Errorf("num_nights entry %d must be positive", days))
		}
	}
	if p.MaxToolsAllowed <= 0 {
		errs = append(errs, errors.New("max_num_tools must be positive"))
	}

	return errors.Join(errs...)
}

type Customer struct {
	id       CustomerID
	category CustomerCategory
	profile  Profile
	active   []Rental
}

func NewCustomer(id CustomerID, category CustomerCategory, profile Profile) (*Customer, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: customer %s: %w", ErrInvalidConfiguration, id, err)
	}

	return &Customer{
		id:       id,
		category: category,
		profile:  profile,
	}, nil
}

func (c *Customer) ID() CustomerID             { return c.id }
func (c *Customer) Category() CustomerCategory { return c.category }
func (c *Customer) Profile() Profile           { return c.profile }

func (c *Customer) ActiveRentals() []Rental {
	rentals := make([]Rental, len(c.active))
	copy(rentals, c.active)
	return rentals
}

func (c *Customer) ToolsHeld() int {
	held := 0
	for _, rental := range c.active {
		held += rental.ToolCount()
	}
	return held
}

func (c *Customer) Capacity() int {
	return c.profile.MaxToolsAllowed - c.ToolsHeld()
}

// CreateRental attempts one rental from pool starting on day.
//
// A null rental is returned, and the pool left untouched, when the customer
// has no free capacity or when the free capacity exceeds what the pool
// currently holds. The second guard compares the whole capacity, not the
// drawn quantity, against stock.
//
// An error is only returned alongside a null rental. It wraps
// ErrRentalIDUnavailable when rng cannot supply id bytes, and
// ErrInsufficientInventory when the pool refuses the draw, which the guards
// above should make impossible.
func (c *Customer) CreateRental(pool *InventoryPool, rng Randomness, day int) (Rental, error) {
	capacity := c.Capacity()
	if capacity <= 0 || capacity > pool.Len() {
		return NullRental(), nil
	}

	quantity := min(pick(rng, c.profile.PreferredToolCounts), capacity)
	duration := pick(rng, c.profile.PreferredDurations)

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return NullRental(), fmt.Errorf("%w for %s: %w", ErrRentalIDUnavailable, c.id, err)
	}

	tools, err := pool.Take(quantity)
	if err != nil {
		return NullRental(), fmt.Errorf("create rental for %s: %w", c.id, err)
	}

	rental := NewRental(id, c.id, tools, duration, day)
	c.active = append(c.active, rental)

	return rental, nil
}

// CheckReturns advances every active rental by one day and hands back the
// ones that finished, together with their tools. The caller returns the
// tools to the pool.
func (c *Customer) CheckReturns() ([]Tool, []Rental) {
	var (
		returnedTools   []Tool
		returnedRentals []Rental
	)

	kept := c.active[:0]
	for _, rental := range c.active {
		rental.tick()
		if !rental.IsTerminal() {
			kept = append(kept, rental)
			continue
		}
		returnedTools = append(returnedTools, rental.tools...)
		returnedRentals = append(returnedRentals, rental)
	}
	clear(c.active[len(kept):])
	c.active = kept

	return returnedTools, returnedRentals
}

func pick(rng Randomness, candidates []int) int {
	return candidates[rng.IntN(len(candidates))]
}

// CustomerIDFor builds the id of the n-th customer (from 1) in a category.
func CustomerIDFor(category CustomerCategory, n int) CustomerID {
	return CustomerID(fmt.Sprintf("%s-%d", strings.ToLower(string(category)), n))
}
