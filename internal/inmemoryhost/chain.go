package inmemoryhost

import (
	"sync"

	"github.com/vk/plugkit/internal/host"
)

// Chain is an ordered component-loader chain with a single legacy fallback
// slot, mirroring hosts that predate chained registration.
type Chain struct {
	mu       sync.Mutex
	loaders  []host.LoadFunc
	fallback host.LoadFunc
}

// NewChain creates a Chain with an optional legacy fallback loader.
func NewChain(fallback host.LoadFunc) *Chain {
	return &Chain{fallback: fallback}
}

// Register implements host.LoaderChain.
func (c *Chain) Register(fn host.LoadFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaders = append(c.loaders, fn)
}

// Resolve implements host.LoaderChain: loaders fire in registration order
// until one reports a hit; the fallback, when still set, fires last.
func (c *Chain) Resolve(name string) bool {
	c.mu.Lock()
	loaders := make([]host.LoadFunc, len(c.loaders))
	copy(loaders, c.loaders)
	fallback := c.fallback
	c.mu.Unlock()

	for _, fn := range loaders {
		if fn(name) {
			return true
		}
	}
	if fallback != nil {
		return fallback(name)
	}
	return false
}

// Fallback implements host.LoaderChain.
func (c *Chain) Fallback() host.LoadFunc {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fallback
}

// SetFallback implements host.LoaderChain.
func (c *Chain) SetFallback(fn host.LoadFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = fn
}

// Len returns the number of chained loaders, excluding the fallback.
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loaders)
}
