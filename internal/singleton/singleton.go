// Package singleton guarantees at most one instance of each extension per
// process: construction happens on first request through a registered
// factory, init runs exactly once, and every later request returns the
// cached instance.
package singleton

import (
	"context"
	"fmt"

	"github.com/vk/plugkit/internal/assets"
	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/extension"
	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/settings"
	"github.com/vk/plugkit/internal/spec"
)

// noCopy triggers go vet's copylocks check on types that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Entry is the per-identity handle: the instance itself plus the state
// bound to it at construction time. Entries must not be copied.
type Entry struct {
	noCopy noCopy

	Ext      extension.Extension
	Spec     *spec.Spec
	Settings *settings.Registry

	initDone bool
}

// Registry owns one Entry per extension identity for the lifetime of the
// process. It is created once at startup and shared by reference.
type Registry struct {
	h       *host.Host
	specs   *spec.Cache
	queue   *assets.Queue
	factory map[string]extension.Factory
	entries map[string]*Entry
}

// New creates an empty Registry wired to the shared spec cache and asset
// queue.
func New(h *host.Host, specs *spec.Cache, queue *assets.Queue) *Registry {
	return &Registry{
		h:       h,
		specs:   specs,
		queue:   queue,
		factory: make(map[string]extension.Factory),
		entries: make(map[string]*Entry),
	}
}

// RegisterFactory binds the constructor for an identity. Registering the
// same identity twice is a logged programming error; the first factory wins.
func (r *Registry) RegisterFactory(ctx context.Context, identity string, f extension.Factory) {
	if f == nil {
		diag.ProgrammingError(ctx, "nil factory registered", "identity", identity)
		return
	}
	if _, exists := r.factory[identity]; exists {
		diag.ProgrammingError(ctx, "duplicate factory registration", "identity", identity)
		return
	}
	r.factory[identity] = f
}

// Declare returns the manifest path and minimum host version the identity's
// extension declares, without initializing anything. The values come from a
// throwaway instance when none is cached yet; constructors take no
// arguments and perform no work, so this is free of side effects.
func (r *Registry) Declare(ctx context.Context, identity string) (manifestPath, minVersion string, ok bool) {
	if e, exists := r.entries[identity]; exists {
		return e.Ext.ManifestPath(), e.Ext.MinimumHostVersion(), true
	}
	f, exists := r.factory[identity]
	if !exists {
		diag.ProgrammingError(ctx, "unknown extension identity", "identity", identity)
		return "", "", false
	}
	probe := f()
	return probe.ManifestPath(), probe.MinimumHostVersion(), true
}

// Instance returns the single instance for identity, constructing and
// initializing it on first call. Later calls return the cached entry
// without re-running init, even when init failed: init runs at most once
// per identity per process, and its error is reported through the
// diagnostics sink rather than propagated into the host dispatcher.
func (r *Registry) Instance(ctx context.Context, identity string) (*Entry, error) {
	if e, ok := r.entries[identity]; ok {
		return e, nil
	}

	f, ok := r.factory[identity]
	if !ok {
		diag.ProgrammingError(ctx, "instance requested for unknown identity", "identity", identity)
		return nil, fmt.Errorf("singleton: no factory for identity %q", identity)
	}

	ext := f()
	sp, err := r.specs.Resolve(ctx, identity, ext.ManifestPath(), ext.MinimumHostVersion())
	if err != nil {
		return nil, fmt.Errorf("singleton: constructing %q: %w", identity, err)
	}

	e := &Entry{
		Ext:      ext,
		Spec:     sp,
		Settings: settings.New(sp, r.h.Settings),
	}
	// Cache before init so a re-entrant Instance call during init resolves
	// to the same entry instead of constructing a second instance.
	r.entries[identity] = e

	logger := diag.FromContext(ctx).With("identity", identity)
	rt := extension.NewRuntime(sp, r.queue, e.Settings, r.h.Loaders.Resolve, logger)
	if err := ext.Init(rt); err != nil {
		diag.FromContext(ctx).Error("Extension init failed.", "identity", identity, "error", err)
	}
	e.initDone = true
	logger.Debug("Extension instance constructed and initialized.")
	return e, nil
}

// Initialized reports whether the identity's instance exists and has run
// its init.
func (r *Registry) Initialized(identity string) bool {
	e, ok := r.entries[identity]
	return ok && e.initDone
}
