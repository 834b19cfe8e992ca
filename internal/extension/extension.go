// Package extension defines the contract an extension implements to be
// managed by the lifecycle core, and the Runtime handed to its one-time
// init for declaring assets and settings.
package extension

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/plugkit/internal/assets"
	"github.com/vk/plugkit/internal/settings"
	"github.com/vk/plugkit/internal/spec"
)

// Extension is implemented by every concrete extension. Instances are
// created only by the singleton registry, via a registered Factory; code
// outside the extension's own package never constructs one directly.
type Extension interface {
	// ManifestPath returns the path of the manifest file declaring the
	// extension. The manifest's directory is the extension's root.
	ManifestPath() string

	// MinimumHostVersion returns the lowest host version the extension
	// supports. Empty means no constraint.
	MinimumHostVersion() string

	// Init runs the extension's declarative setup. It is called exactly
	// once per process, after the spec is resolved; implementations should
	// still guard against re-entry since some hosts re-enter bootstrap.
	Init(rt *Runtime) error
}

// HookHandler is optionally implemented by extensions that asked for an
// extra hook registration at plug time.
type HookHandler interface {
	HandleHook(ctx context.Context, hook string, args ...any)
}

// Factory constructs a fresh, uninitialized extension value. The
// constructor takes no arguments; everything an extension needs arrives
// through Init.
type Factory func() Extension

// Runtime is the surface an extension may call during Init. It binds the
// process-wide asset queue and the extension's own settings registry to the
// extension's resolved spec.
type Runtime struct {
	sp       *spec.Spec
	assets   *assets.Queue
	settings *settings.Registry
	require  func(name string) bool
	logger   *slog.Logger
}

// NewRuntime binds a Runtime for one extension instance. require resolves
// qualified component names through the host loader chain.
func NewRuntime(sp *spec.Spec, q *assets.Queue, s *settings.Registry, require func(string) bool, logger *slog.Logger) *Runtime {
	return &Runtime{sp: sp, assets: q, settings: s, require: require, logger: logger}
}

// Spec returns the extension's resolved descriptor.
func (rt *Runtime) Spec() *spec.Spec { return rt.sp }

// Log returns the extension's logger.
func (rt *Runtime) Log() *slog.Logger { return rt.logger }

// AddScript queues a public-surface script, footer placement optional.
func (rt *Runtime) AddScript(rel string, deps []string, footer bool) {
	rt.assets.AddScript(rt.sp, rel, deps, footer)
}

// AddAdminScript queues an admin-surface script.
func (rt *Runtime) AddAdminScript(rel string, deps []string, footer bool) {
	rt.assets.AddAdminScript(rt.sp, rel, deps, footer)
}

// AddStyle queues a public-surface stylesheet.
func (rt *Runtime) AddStyle(rel string, deps []string, media string) {
	rt.assets.AddStyle(rt.sp, rel, deps, media)
}

// AddAdminStyle queues an admin-surface stylesheet.
func (rt *Runtime) AddAdminStyle(rel string, deps []string, media string) {
	rt.assets.AddAdminStyle(rt.sp, rel, deps, media)
}

// AddSection declares a settings section on the extension's options page.
func (rt *Runtime) AddSection(id, title, description string) {
	rt.settings.AddSection(id, title, description)
}

// AddField declares a settings field under an existing section.
func (rt *Runtime) AddField(sectionID, fieldID, title string, render func(w io.Writer)) {
	rt.settings.AddField(sectionID, fieldID, title, render)
}

// Require resolves a qualified component name through the host loader
// chain, reporting whether any loader found it.
func (rt *Runtime) Require(name string) bool {
	if rt.require == nil {
		return false
	}
	return rt.require(name)
}
