package domain

import "fmt"

// InventoryPool holds the tools currently available for rent.
// It is not safe for concurrent use.
type InventoryPool struct {
	tools []Tool
	rng   Randomness
}

func NewInventoryPool(tools []Tool, rng Randomness) *InventoryPool {
	pooled := make([]Tool, len(tools))
	copy(pooled, tools)

	return &InventoryPool{tools: pooled, rng: rng}
}

func (p *InventoryPool) Len() int {
	return len(p.tools)
}

// Available returns a copy of the tools currently in the pool.
func (p *InventoryPool) Available() []Tool {
	tools := make([]Tool, len(p.tools))
	copy(tools, p.tools)
	return tools
}

// Take removes n tools chosen uniformly at random without replacement.
// The pool is left unchanged when it fails.
func (p *InventoryPool) Take(n int) ([]Tool, error) {
	if n < 0 {
		return nil, fmt.Errorf("take %d tools: count must not be negative", n)
	}
	if n > len(p.tools) {
		return nil, fmt.Errorf("take %d tools with %d available: %w", n, len(p.tools), ErrInsufficientInventory)
	}
	if n == 0 {
		return nil, nil
	}

	taken := make([]Tool, 0, n)
	for range n {
		last := len(p.tools) - 1
		i := p.rng.IntN(last + 1)
		taken = append(taken, p.tools[i])
		p.tools[i] = p.tools[last]
		p.tools[last] = Tool{}
		p.tools = p.tools[:last]
	}

	return taken, nil
}

func (p *InventoryPool) Return(tools []Tool) {
	p.tools = append(p.tools, tools...)
}
