package app

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/vk/plugkit/internal/assets"
	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/extension"
	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/inmemoryhost"
	"github.com/vk/plugkit/internal/plug"
	"github.com/vk/plugkit/internal/singleton"
	"github.com/vk/plugkit/internal/spec"
)

// App encapsulates one simulated host process: the in-memory host, the
// process-wide registries, and the lifecycle bootstrap, all scoped to this
// instance so tests get a fresh process per App.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config

	h   *host.Host
	mem *inmemoryhost.Memory

	specs      *spec.Cache
	queue      *assets.Queue
	instances  *singleton.Registry
	bootstrap  *plug.Bootstrap
	identities []string
}

// NewApp is the constructor for the main application. It wires the
// in-memory host, the shared registries, and the given extension factories.
// When factories is nil the compiled-in core extensions are used.
func NewApp(outW io.Writer, cfg *Config, factories map[string]extension.Factory) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := diag.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	h, mem := inmemoryhost.New(inmemoryhost.Options{
		Version: cfg.HostVersion,
		Admin:   cfg.Audience == AudienceAdmin,
		BaseURL: cfg.BaseURL,
	})

	specs := spec.NewCache(h.URLs)
	queue := assets.NewQueue(h.Assets, h.Request)
	instances := singleton.New(h, specs, queue)
	bootstrap := plug.New(h, specs, instances, queue)

	if factories == nil {
		factories = CoreExtensions()
	}
	identities := make([]string, 0, len(factories))
	for identity, factory := range factories {
		instances.RegisterFactory(ctx, identity, factory)
		identities = append(identities, identity)
	}
	sort.Strings(identities)
	logger.Debug("Extension factories registered.", "count", len(identities))

	return &App{
		outW:       outW,
		logger:     logger,
		cfg:        cfg,
		h:          h,
		mem:        mem,
		specs:      specs,
		queue:      queue,
		instances:  instances,
		bootstrap:  bootstrap,
		identities: identities,
	}
}

// Host returns the simulated host. This is primarily for testing.
func (a *App) Host() (*host.Host, *inmemoryhost.Memory) {
	return a.h, a.mem
}

// Bootstrap returns the lifecycle bootstrap. This is primarily for testing.
func (a *App) Bootstrap() *plug.Bootstrap {
	return a.bootstrap
}
