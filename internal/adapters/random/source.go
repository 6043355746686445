package random

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/bnema/toolrental/internal/domain"
	"github.com/bnema/toolrental/internal/ports"
)

// Source is a ChaCha8 stream shared by every random draw of a run.
type Source struct {
	*rand.Rand
	chacha *rand.ChaCha8
}

var _ domain.Randomness = (*Source)(nil)

func NewSource(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	chacha := rand.NewChaCha8(key)

	return &Source{Rand: rand.New(chacha), chacha: chacha}
}

func (s *Source) Read(p []byte) (int, error) {
	return s.chacha.Read(p)
}

type Factory struct{}

var _ ports.RandomFactory = Factory{}

func (Factory) New(seed uint64) domain.Randomness {
	return NewSource(seed)
}

// Seed draws a non-negative int64 so seeds survive TOML round trips.
func (Factory) Seed() uint64 {
	return uint64(rand.Int64())
}
