package app

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vk/plugkit/internal/diag"
)

// manifestName is the conventional file name of an extension manifest.
const manifestName = "extension.hcl"

// discoverManifests walks the configured extensions path for manifest files
// and cross-checks them against the registered factories, warning about
// installed extensions no compiled-in factory claims. Discovery is
// informational: the factory list, not the file system, decides what plugs.
func (a *App) discoverManifests(ctx context.Context) []string {
	logger := diag.FromContext(ctx)
	if a.cfg.ExtensionsPath == "" {
		return nil
	}

	var manifests []string
	err := filepath.WalkDir(a.cfg.ExtensionsPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == manifestName {
			manifests = append(manifests, path)
		}
		return nil
	})
	if err != nil {
		logger.Warn("Extension discovery failed.", "path", a.cfg.ExtensionsPath, "error", err)
		return nil
	}

	if len(manifests) == 0 {
		logger.Warn("No extension manifests found in path.", "path", a.cfg.ExtensionsPath)
		return nil
	}

	claimed := make(map[string]bool)
	for _, identity := range a.identities {
		if manifestPath, _, ok := a.instances.Declare(ctx, identity); ok {
			claimed[filepath.Clean(manifestPath)] = true
		}
	}

	for _, m := range manifests {
		abs, err := filepath.Abs(m)
		if err != nil {
			abs = m
		}
		if !claimed[filepath.Clean(abs)] && !claimed[filepath.Clean(m)] {
			logger.Warn("Manifest has no registered factory.", "manifest", m)
			continue
		}
		logger.Debug("Extension manifest discovered.", "manifest", m)
	}
	return manifests
}

// shortIdentity trims an identity down to its last segment for display.
func shortIdentity(identity string) string {
	if i := strings.LastIndexByte(identity, '.'); i >= 0 {
		return identity[i+1:]
	}
	return identity
}
