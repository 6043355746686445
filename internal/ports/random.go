package ports

import "github.com/bnema/toolrental/internal/domain"

// RandomFactory builds the shared randomness source for one run.
type RandomFactory interface {
	New(seed uint64) domain.Randomness
	// Seed draws a fresh seed for runs that do not configure one.
	Seed() uint64
}
