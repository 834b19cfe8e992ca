package plug

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/plugkit/internal/assets"
	"github.com/vk/plugkit/internal/autoload"
	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/extension"
	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/singleton"
	"github.com/vk/plugkit/internal/spec"
)

// State is an extension's lifecycle state. StatePlugged is terminal for the
// process.
type State int

const (
	StateNotPlugged State = iota
	StatePlugged
)

// String implements fmt.Stringer for log and report output.
func (s State) String() string {
	if s == StatePlugged {
		return "plugged"
	}
	return "not-plugged"
}

// Bootstrap drives the one-time lifecycle transition for each extension:
// version gate, autoload registration, singleton construction, hook wiring.
// One Bootstrap exists per process.
type Bootstrap struct {
	h         *host.Host
	specs     *spec.Cache
	instances *singleton.Registry
	queue     *assets.Queue

	states    map[string]State
	versionOK map[string]bool
	loaders   map[string]*autoload.Loader
}

// New creates a Bootstrap over the shared registries.
func New(h *host.Host, specs *spec.Cache, instances *singleton.Registry, queue *assets.Queue) *Bootstrap {
	return &Bootstrap{
		h:         h,
		specs:     specs,
		instances: instances,
		queue:     queue,
		states:    make(map[string]State),
		versionOK: make(map[string]bool),
		loaders:   make(map[string]*autoload.Loader),
	}
}

// State returns the lifecycle state recorded for identity.
func (b *Bootstrap) State(identity string) State {
	return b.states[identity]
}

// Plug transitions identity from not-plugged to plugged. Re-entry is a
// logged programming error and returns failure without registering anything
// twice. When the host version does not meet the extension's declared
// minimum, only a version-warning notice hook is registered and the
// extension stays not-plugged; the host process is unaffected.
//
// extraHook, when non-empty, is an additional host hook the caller wants
// dispatched to the extension; the extension must implement
// extension.HookHandler for it to be wired.
func (b *Bootstrap) Plug(ctx context.Context, identity, extraHook string) error {
	logger := diag.FromContext(ctx)

	if b.states[identity] == StatePlugged {
		diag.ProgrammingError(ctx, "extension plugged more than once", "identity", identity)
		return fmt.Errorf("plug: extension %q is already plugged", identity)
	}

	manifestPath, minVersion, ok := b.instances.Declare(ctx, identity)
	if !ok {
		return fmt.Errorf("plug: unknown extension %q", identity)
	}

	// The gate result is recorded per identity and re-verified on every
	// hook registration, so late registrations stay protected.
	if !versionSatisfied(b.h.Version, minVersion) {
		if _, noticed := b.versionOK[identity]; noticed {
			return nil
		}
		b.versionOK[identity] = false
		b.registerVersionNotice(identity, minVersion)
		logger.Warn("Host version below extension minimum, bootstrap halted.",
			"identity", identity, "required", minVersion, "running", b.h.Version)
		return nil
	}
	b.versionOK[identity] = true

	sp, err := b.specs.Resolve(ctx, identity, manifestPath, minVersion)
	if err != nil {
		return fmt.Errorf("plug: %w", err)
	}

	loader := autoload.New(sp, b.h.Include, logger)
	loader.Register(b.h.Loaders)
	b.loaders[identity] = loader

	// Constructing the singleton runs the extension's declarative setup,
	// populating the asset queue and its settings registry.
	entry, err := b.instances.Instance(ctx, identity)
	if err != nil {
		return fmt.Errorf("plug: %w", err)
	}

	b.registerHook(ctx, identity, host.HookPublicAssets, func(ctx context.Context, _ ...any) {
		b.queue.FlushPublic(ctx)
	})
	b.registerHook(ctx, identity, host.HookAdminAssets, func(ctx context.Context, _ ...any) {
		b.queue.FlushAdmin(ctx)
	})
	b.registerHook(ctx, identity, host.HookBoot, func(ctx context.Context, _ ...any) {
		b.loadTranslations(ctx, sp)
	})
	b.registerHook(ctx, identity, host.HookAdminMenu, func(ctx context.Context, _ ...any) {
		entry.Settings.RegisterOptionsPage(ctx)
	})
	b.registerHook(ctx, identity, host.HookAdminInit, func(ctx context.Context, _ ...any) {
		entry.Settings.RegisterOptions(ctx)
	})

	if extraHook != "" {
		if handler, ok := entry.Ext.(extension.HookHandler); ok {
			b.registerHook(ctx, identity, extraHook, func(ctx context.Context, args ...any) {
				handler.HandleHook(ctx, extraHook, args...)
			})
		} else {
			diag.ProgrammingError(ctx, "extra hook requested but extension handles no hooks",
				"identity", identity, "hook", extraHook)
		}
	}

	b.states[identity] = StatePlugged
	logger.Info("Extension plugged.", "identity", identity)
	return nil
}

// registerHook registers fn for identity, re-checking the version gate at
// registration time rather than trusting the bootstrap-time check.
func (b *Bootstrap) registerHook(ctx context.Context, identity, hook string, fn host.HookFunc) {
	if !b.versionOK[identity] {
		diag.FromContext(ctx).Debug("Hook registration skipped by version gate.",
			"identity", identity, "hook", hook)
		return
	}
	b.h.Hooks.Register(hook, fn, host.DefaultPriority)
}

// registerVersionNotice wires the one-time administrative warning shown when
// the gate fails. The notice bypasses registerHook: it is the only
// registration allowed for an unmet extension.
func (b *Bootstrap) registerVersionNotice(identity, minVersion string) {
	running := b.h.Version
	b.h.Hooks.Register(host.HookAdminNotices, func(ctx context.Context, args ...any) {
		if len(args) == 0 {
			return
		}
		w, ok := args[0].(io.Writer)
		if !ok {
			return
		}
		fmt.Fprintf(w, `<div class="notice notice-error"><p>%s requires host version %s or newer (running %s).</p></div>`,
			identity, minVersion, running)
	}, host.DefaultPriority)
}

// loadTranslations loads the extension's text domain when it offers a
// language directory. The domain comes from the manifest headers, falling
// back to the identity slug.
func (b *Bootstrap) loadTranslations(ctx context.Context, sp *spec.Spec) {
	if sp.LanguageDir == "" {
		return
	}
	logger := diag.FromContext(ctx)

	domain := spec.Slugify(sp.Identity)
	meta, err := b.h.Meta.Read(sp.SourceFile)
	if err != nil {
		logger.Warn("Manifest headers unavailable, using identity slug as text domain.",
			"identity", sp.Identity, "error", err)
	} else if td := meta["TextDomain"]; td != "" {
		domain = td
	}

	if err := b.h.L10n.Load(domain, sp.LanguageDir); err != nil {
		logger.Warn("Translation load failed.", "identity", sp.Identity, "domain", domain, "error", err)
	}
}
