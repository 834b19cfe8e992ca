package inmemoryhost

import (
	"context"
	"sort"
	"sync"

	"github.com/vk/plugkit/internal/host"
)

// registration is one callback attached to a hook.
type registration struct {
	fn       host.HookFunc
	priority int
	seq      int
}

// Dispatcher is a named-hook registry with priority-ordered dispatch.
// Registration order breaks priority ties.
type Dispatcher struct {
	mu    sync.Mutex
	hooks map[string][]registration
	seq   int
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{hooks: make(map[string][]registration)}
}

// Register implements host.Dispatcher.
func (d *Dispatcher) Register(hook string, fn host.HookFunc, priority int) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.hooks[hook] = append(d.hooks[hook], registration{fn: fn, priority: priority, seq: d.seq})
}

// Fire invokes every callback registered for hook, lowest priority first,
// registration order within a priority.
func (d *Dispatcher) Fire(ctx context.Context, hook string, args ...any) {
	d.mu.Lock()
	regs := make([]registration, len(d.hooks[hook]))
	copy(regs, d.hooks[hook])
	d.mu.Unlock()

	sort.SliceStable(regs, func(i, j int) bool {
		if regs[i].priority != regs[j].priority {
			return regs[i].priority < regs[j].priority
		}
		return regs[i].seq < regs[j].seq
	})
	for _, r := range regs {
		r.fn(ctx, args...)
	}
}

// Count returns the number of callbacks registered for hook.
func (d *Dispatcher) Count(hook string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.hooks[hook])
}
