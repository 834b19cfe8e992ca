// Package inmemoryhost is the reference implementation of the host
// collaborator contracts: a priority-ordered hook dispatcher, a recording
// asset enqueuer, an in-memory settings store, an include-once component
// loader, and a loader chain with legacy-fallback support. The CLI uses it
// to simulate a request; tests use it as a hermetic host.
package inmemoryhost

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/manifest"
)

// Options configures a simulated host.
type Options struct {
	// Version is the host version reported to the lifecycle core.
	Version string
	// Admin selects the administrative request context.
	Admin bool
	// BaseURL is the public URL prefix paths are mapped under.
	BaseURL string
	// LegacyLoader, when set, is installed as the chain's fallback.
	LegacyLoader host.LoadFunc
}

// Memory exposes the concrete collaborator implementations behind a
// host.Host, so callers can fire hooks and inspect recorded activity.
type Memory struct {
	Dispatcher *Dispatcher
	Enqueued   *EnqueueLog
	Settings   *SettingsStore
	Includes   *IncludeOnce
	Chain      *Chain
	L10n       *Localizer
	Request    *RequestCtx
}

// New builds a fully wired in-memory host.
func New(opts Options) (*host.Host, *Memory) {
	mem := &Memory{
		Dispatcher: NewDispatcher(),
		Enqueued:   NewEnqueueLog(),
		Settings:   NewSettingsStore(),
		Includes:   NewIncludeOnce(),
		Chain:      NewChain(opts.LegacyLoader),
		L10n:       NewLocalizer(),
		Request:    &RequestCtx{admin: opts.Admin},
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://example.test/ext"
	}

	h := &host.Host{
		Version:  opts.Version,
		URLs:     &URLMap{Base: baseURL},
		Hooks:    mem.Dispatcher,
		Assets:   mem.Enqueued,
		Settings: mem.Settings,
		Include:  mem.Includes,
		Loaders:  mem.Chain,
		Meta:     manifest.Reader{},
		L10n:     mem.L10n,
		Request:  mem.Request,
	}
	return h, mem
}

// URLMap maps local paths onto a public URL prefix. The mapping is purely
// mechanical; a real host would consult its own installation layout.
type URLMap struct {
	Base string
}

// URLFor implements host.URLResolver.
func (u *URLMap) URLFor(path string) (string, error) {
	if path == "" {
		return "", errors.New("urlmap: empty path")
	}
	return strings.TrimSuffix(u.Base, "/") + filepath.ToSlash(path), nil
}

// Load is one recorded translation load.
type Load struct {
	Domain string
	Dir    string
}

// Localizer records translation loads.
type Localizer struct {
	mu     sync.Mutex
	loaded []Load
}

// NewLocalizer creates an empty Localizer.
func NewLocalizer() *Localizer {
	return &Localizer{}
}

// Load implements host.Localizer.
func (l *Localizer) Load(textDomain, dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = append(l.loaded, Load{Domain: textDomain, Dir: dir})
	return nil
}

// Loaded returns the recorded loads in order.
func (l *Localizer) Loaded() []Load {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Load, len(l.loaded))
	copy(out, l.loaded)
	return out
}

// RequestCtx implements host.RequestInfo for a simulated request.
type RequestCtx struct {
	mu    sync.Mutex
	admin bool
}

// IsAdmin implements host.RequestInfo.
func (r *RequestCtx) IsAdmin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admin
}

// SetAdmin switches the simulated request context.
func (r *RequestCtx) SetAdmin(admin bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admin = admin
}
