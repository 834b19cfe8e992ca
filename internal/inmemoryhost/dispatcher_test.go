package inmemoryhost

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_FireOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := NewDispatcher()
	var order []string
	add := func(name string, priority int) {
		d.Register("boot", func(context.Context, ...any) {
			order = append(order, name)
		}, priority)
	}

	add("late", 20)
	add("first", 5)
	add("mid-a", 10)
	add("mid-b", 10)

	d.Fire(ctx, "boot")
	assert.Equal(t, []string{"first", "mid-a", "mid-b", "late"}, order,
		"priority first, registration order within a priority")
}

func TestDispatcher_ArgsAndIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := NewDispatcher()
	var got any
	d.Register("render", func(_ context.Context, args ...any) {
		require.Len(t, args, 1)
		got = args[0]
	}, 10)

	d.Fire(ctx, "render", 42)
	assert.Equal(t, 42, got)

	// Firing an unknown hook is a no-op.
	d.Fire(ctx, "unknown")
	assert.Equal(t, 1, d.Count("render"))
	assert.Zero(t, d.Count("unknown"))
}

func TestChain_Resolve(t *testing.T) {
	t.Parallel()

	c := NewChain(nil)
	assert.False(t, c.Resolve("anything"), "empty chain misses")

	c.Register(func(name string) bool { return name == "a" })
	c.Register(func(name string) bool { return name == "b" })
	assert.True(t, c.Resolve("a"))
	assert.True(t, c.Resolve("b"))
	assert.False(t, c.Resolve("c"))

	c.SetFallback(func(name string) bool { return name == "c" })
	assert.True(t, c.Resolve("c"), "fallback fires after the chain misses")
}
