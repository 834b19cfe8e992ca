package spec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/host"
)

// Conventional subdirectories probed during spec resolution.
const (
	autoloadDirName = "frameworks"
	languageDirName = "language"
)

// ErrNoSourceFile is returned when an extension's defining file cannot be
// determined. Without it the extension has no installation directory and
// cannot be said to exist.
var ErrNoSourceFile = errors.New("spec: source file could not be determined")

// Cache memoizes one Spec per extension identity for the lifetime of the
// process. It is created once at startup and shared by reference, which
// keeps tests hermetic: a fresh Cache is a fresh process as far as the
// lifecycle core is concerned.
type Cache struct {
	urls  host.URLResolver
	specs map[string]*Spec
}

// NewCache creates an empty Cache resolving public URLs through urls.
func NewCache(urls host.URLResolver) *Cache {
	return &Cache{
		urls:  urls,
		specs: make(map[string]*Spec),
	}
}

// Resolve returns the Spec for identity, computing it on first call and
// returning the cached value unconditionally on every later call. The
// sourceFile and minHostVersion arguments are only consulted on the first
// call for a given identity.
func (c *Cache) Resolve(ctx context.Context, identity, sourceFile, minHostVersion string) (*Spec, error) {
	if s, ok := c.specs[identity]; ok {
		return s, nil
	}

	logger := diag.FromContext(ctx)

	if sourceFile == "" {
		return nil, fmt.Errorf("%w (identity %q)", ErrNoSourceFile, identity)
	}
	sourceFile, err := filepath.Abs(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("spec: resolving source file for %q: %w", identity, err)
	}

	rootDir := filepath.Dir(sourceFile) + string(filepath.Separator)
	publicURL, err := c.urls.URLFor(rootDir)
	if err != nil {
		return nil, fmt.Errorf("spec: resolving public URL for %q: %w", identity, err)
	}
	if !strings.HasSuffix(publicURL, "/") {
		publicURL += "/"
	}

	s := &Spec{
		Identity:       identity,
		ShortName:      shortName(identity),
		SourceFile:     sourceFile,
		RootDir:        rootDir,
		PublicURL:      publicURL,
		MinHostVersion: minHostVersion,
		SettingsPageID: Slugify(identity),
	}

	// A missing subdirectory is not an error: the feature is simply not
	// offered by this extension.
	if dir := filepath.Join(rootDir, autoloadDirName); dirExists(dir) {
		s.AutoloadRoot = dir
	} else {
		logger.Debug("Extension has no autoload root.", "identity", identity, "probed", dir)
	}
	if dir := filepath.Join(rootDir, languageDirName); dirExists(dir) {
		s.LanguageDir = dir
	} else {
		logger.Debug("Extension has no language directory.", "identity", identity, "probed", dir)
	}

	c.specs[identity] = s
	logger.Debug("Extension spec resolved.", "identity", identity, "root", rootDir)
	return s, nil
}

// Lookup returns the cached Spec for identity without resolving anything.
func (c *Cache) Lookup(identity string) (*Spec, bool) {
	s, ok := c.specs[identity]
	return s, ok
}

// shortName returns the last dot-separated segment of a qualified identity.
func shortName(identity string) string {
	if i := strings.LastIndexByte(identity, '.'); i >= 0 {
		return identity[i+1:]
	}
	return identity
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
