// Package gallery is an example extension exercising the full surface:
// public and admin assets, autoloaded components under frameworks/, and a
// translated text domain.
package gallery

import (
	"path/filepath"
	"runtime"

	"github.com/vk/plugkit/internal/extension"
)

// Identity is the qualified name this extension is registered under.
const Identity = "plugkit.gallery"

// Gallery implements extension.Extension.
type Gallery struct {
	carouselReady bool
}

// New constructs an uninitialized Gallery.
func New() extension.Extension {
	return &Gallery{}
}

// ManifestPath returns the manifest next to this source file.
func (g *Gallery) ManifestPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "extension.hcl")
}

// MinimumHostVersion reports no constraint.
func (g *Gallery) MinimumHostVersion() string { return "" }

// Init declares assets and pulls in the carousel component through the
// host loader chain.
func (g *Gallery) Init(rt *extension.Runtime) error {
	rt.AddStyle("assets/css/gallery.css", nil, "")
	rt.AddScript("assets/js/gallery.js", []string{"host-core"}, true)
	rt.AddAdminStyle("assets/css/gallery-admin.css", nil, "screen")
	rt.AddAdminScript("assets/js/gallery-admin.js", nil, false)

	g.carouselReady = rt.Require("gallery.widgets.Carousel")
	if !g.carouselReady {
		rt.Log().Warn("Carousel component not found, slideshows disabled.")
	}
	return nil
}
