// Package hello is the smallest possible extension: one public script,
// nothing else. It doubles as a template for new extensions.
package hello

import (
	"path/filepath"
	"runtime"

	"github.com/vk/plugkit/internal/extension"
)

// Identity is the qualified name this extension is registered under.
const Identity = "plugkit.hello"

// Hello implements extension.Extension.
type Hello struct{}

// New constructs an uninitialized Hello. Only the singleton registry calls
// this, through the registered factory.
func New() extension.Extension {
	return &Hello{}
}

// ManifestPath returns the manifest next to this source file.
func (h *Hello) ManifestPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "extension.hcl")
}

// MinimumHostVersion reports no constraint.
func (h *Hello) MinimumHostVersion() string { return "" }

// Init declares the extension's assets.
func (h *Hello) Init(rt *extension.Runtime) error {
	rt.AddScript("assets/js/hello.js", nil, true)
	return nil
}
