package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

type seededRandom struct {
	*rand.Rand
	chacha *rand.ChaCha8
}

func newSeededRandom(seed uint64) *seededRandom {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	chacha := rand.NewChaCha8(key)

	return &seededRandom{Rand: rand.New(chacha), chacha: chacha}
}

func (r *seededRandom) Read(p []byte) (int, error) {
	return r.chacha.Read(p)
}

// failingIDSource draws numbers normally but cannot produce rental ids.
type failingIDSource struct {
	*seededRandom
}

func (failingIDSource) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func singleTypeConfig(price float64, count int, profile Profile, days int) Config {
	return Config{
		Tools: []CatalogEntry{{Type: ToolTypePainting, Price: price, Count: count}},
		Customers: []CustomerGroup{
			{Category: CustomerCategoryCasual, Count: 1, Profile: profile},
		},
		Simulation: SimulationSettings{Days: days},
	}
}

func testFleet(prices ...float64) []Tool {
	tools := make([]Tool, 0, len(prices))
	for i, price := range prices {
		tools = append(tools, Tool{
			ID:    ToolID(fmt.Sprintf("painting-%d", i+1)),
			Type:  ToolTypePainting,
			Price: price,
		})
	}
	return tools
}
