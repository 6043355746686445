package domain

import "io"

// Randomness is the single seedable source shared by one simulation run.
// *rand.Rand from math/rand/v2 provides IntN and Shuffle; the Reader half
// feeds rental id generation.
type Randomness interface {
	io.Reader
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}
