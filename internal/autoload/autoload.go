// Package autoload maps qualified component names onto files under an
// extension's frameworks directory and loads them on first reference
// through the host's include-once primitive.
package autoload

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/spec"
)

// sourceExt is the file extension appended to the translated component path.
const sourceExt = ".hcl"

// Loader resolves qualified names like "gallery.widgets.Carousel" against a
// single extension's autoload root. One Loader exists per plugged extension.
type Loader struct {
	root       string
	include    host.Includer
	logger     *slog.Logger
	registered bool
}

// New creates a Loader bound to the extension described by sp. The loader
// is inert (every lookup misses) when the extension offers no autoload root.
func New(sp *spec.Spec, include host.Includer, logger *slog.Logger) *Loader {
	return &Loader{
		root:    sp.AutoloadRoot,
		include: include,
		logger:  logger,
	}
}

// Load translates name's dot separators into path separators, appends the
// source extension, and loads the result from the autoload root. It reports
// false on any miss so other loaders in the host chain get a chance; misses
// are never logged as errors. Loading the same name twice is safe: the
// host's include primitive guarantees the file's side effects run once.
func (l *Loader) Load(name string) bool {
	if l.root == "" || name == "" {
		return false
	}

	// The mapping is purely structural: segment naming and case are the
	// caller's responsibility.
	rel := strings.ReplaceAll(name, ".", string(filepath.Separator)) + sourceExt
	path := filepath.Join(l.root, rel)

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return false
	}

	if _, err := l.include.IncludeOnce(path); err != nil {
		l.logger.Warn("Component file found but failed to load.", "name", name, "path", path, "error", err)
		return false
	}
	return true
}

// Register adds Load to the host's loader chain, exactly once per Loader.
// If the chain holds a legacy fallback loader, the fallback is re-registered
// ahead of this one so it still fires for names this loader cannot resolve.
func (l *Loader) Register(chain host.LoaderChain) bool {
	if l.registered {
		return false
	}
	if fallback := chain.Fallback(); fallback != nil {
		chain.Register(fallback)
		chain.SetFallback(nil)
	}
	chain.Register(l.Load)
	l.registered = true
	return true
}
