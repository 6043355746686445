package domain

import (
	"errors"
	"fmt"
)

type StoreOptions struct {
	// ShuffleCustomers re-rolls the rental phase order every day.
	ShuffleCustomers bool
	// StrictInvariants turns failed rental attempts into errors instead of
	// null rentals, and re-checks the stock partition after every day.
	StrictInvariants bool
}

// DayReport describes what happened during one day-cycle.
type DayReport struct {
	Day                 int
	Returned            []Rental
	Created             []Rental
	NullRentals         int
	Revenue             float64
	Available           int
	InvariantViolations int
	FailedRentals       int
}

// Store runs the daily return/rent cycle over a fixed fleet and customer
// population. It is not safe for concurrent use.
type Store struct {
	catalog   ToolCatalog
	inventory *InventoryPool
	customers []*Customer
	order     []int
	rng       Randomness
	opts      StoreOptions

	fleetSize  int
	day        int
	revenue    float64
	returned   []Rental
	violations int
	failures   int
}

func NewStore(cfg Config, rng Randomness) (*Store, error) {
	if rng == nil {
		return nil, errors.New("randomness source is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := NewToolCatalog(cfg.Tools)
	if err != nil {
		return nil, err
	}

	var customers []*Customer
	for _, group := range cfg.Customers {
		for n := 1; n <= group.Count; n++ {
			customer, err := NewCustomer(CustomerIDFor(group.Category, n), group.Category, group.Profile)
			if err != nil {
				return nil, err
			}
			customers = append(customers, customer)
		}
	}

	order := make([]int, len(customers))
	for i := range order {
		order[i] = i
	}

	fleet := catalog.BuildFleet()

	return &Store{
		catalog:   catalog,
		inventory: NewInventoryPool(fleet, rng),
		customers: customers,
		order:     order,
		rng:       rng,
		opts: StoreOptions{
			ShuffleCustomers: cfg.Simulation.ShuffleCustomers,
			StrictInvariants: cfg.Simulation.StrictInvariants,
		},
		fleetSize: len(fleet),
	}, nil
}

// CycleDay runs one simulated day: every customer returns finished rentals,
// then every customer attempts one new rental. Tools returned today can be
// rented again today.
func (s *Store) CycleDay() (DayReport, error) {
	s.day++
	report := DayReport{Day: s.day}

	for _, customer := range s.customers {
		tools, rentals := customer.CheckReturns()
		s.inventory.Return(tools)
		s.returned = append(s.returned, rentals...)
		report.Returned = append(report.Returned, rentals...)
	}

	if s.opts.ShuffleCustomers {
		s.rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}

	for _, idx := range s.order {
		customer := s.customers[idx]
		rental, err := customer.CreateRental(s.inventory, s.rng, s.day)
		if err != nil {
			violation := errors.Is(err, ErrInsufficientInventory)
			if s.opts.StrictInvariants {
				if violation {
					err = errors.Join(ErrInvariantViolation, err)
				}
				return report, fmt.Errorf("day %d: %w", s.day, err)
			}
			if violation {
				report.InvariantViolations++
				s.violations++
			} else {
				report.FailedRentals++
				s.failures++
			}
		}
		if rental.IsNull() {
			report.NullRentals++
			continue
		}
		s.revenue += rental.TotalPrice()
		report.Revenue += rental.TotalPrice()
		report.Created = append(report.Created, rental)
	}

	if s.opts.StrictInvariants {
		if err := s.CheckPartition(); err != nil {
			return report, fmt.Errorf("day %d: %w", s.day, err)
		}
	}

	report.Available = s.inventory.Len()

	return report, nil
}

// CheckPartition verifies that the pool and the customers' active rentals
// together hold every fleet tool exactly once.
func (s *Store) CheckPartition() error {
	seen := make(map[ToolID]struct{}, s.fleetSize)
	duplicate := func(id ToolID) bool {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
		return false
	}

	for _, tool := range s.inventory.tools {
		if duplicate(tool.ID) {
			return fmt.Errorf("%w: tool %s is both available and rented", ErrInvariantViolation, tool.ID)
		}
	}
	for _, customer := range s.customers {
		for _, rental := range customer.active {
			for _, tool := range rental.tools {
				if duplicate(tool.ID) {
					return fmt.Errorf("%w: tool %s is held twice", ErrInvariantViolation, tool.ID)
				}
			}
		}
	}
	if len(seen) != s.fleetSize {
		return fmt.Errorf("%w: accounted for %d of %d tools", ErrInvariantViolation, len(seen), s.fleetSize)
	}

	return nil
}

func (s *Store) Day() int                 { return s.day }
func (s *Store) FleetSize() int           { return s.fleetSize }
func (s *Store) Revenue() float64         { return s.revenue }
func (s *Store) Catalog() ToolCatalog     { return s.catalog }
func (s *Store) InvariantViolations() int { return s.violations }
func (s *Store) FailedRentals() int       { return s.failures }

func (s *Store) Inventory() []Tool {
	return s.inventory.Available()
}

func (s *Store) ReturnedRentals() []Rental {
	rentals := make([]Rental, len(s.returned))
	copy(rentals, s.returned)
	return rentals
}

// Customers returns the customers in construction order.
func (s *Store) Customers() []*Customer {
	customers := make([]*Customer, len(s.customers))
	copy(customers, s.customers)
	return customers
}
