package application

import "github.com/bnema/toolrental/internal/domain"

// RunCommand overrides the loaded configuration for a single run. Zero or
// nil fields keep the configured value.
type RunCommand struct {
	Days             int
	Seed             *uint64
	ShuffleCustomers *bool
	StrictInvariants *bool

	// Progress, when set, is called after every simulated day with the
	// number of days completed and the total number of days.
	Progress func(day, total int)
}

func (c RunCommand) apply(settings *domain.SimulationSettings) {
	if c.Days > 0 {
		settings.Days = c.Days
	}
	if c.Seed != nil {
		settings.Seed = *c.Seed
		settings.Seeded = true
	}
	if c.ShuffleCustomers != nil {
		settings.ShuffleCustomers = *c.ShuffleCustomers
	}
	if c.StrictInvariants != nil {
		settings.StrictInvariants = *c.StrictInvariants
	}
}
