package app

import (
	"github.com/vk/plugkit/internal/extension"
	"github.com/vk/plugkit/modules/feedback"
	"github.com/vk/plugkit/modules/gallery"
	"github.com/vk/plugkit/modules/hello"
)

// CoreExtensions is the definitive list of extensions compiled into the
// plugkit binary, keyed by identity.
func CoreExtensions() map[string]extension.Factory {
	return map[string]extension.Factory{
		feedback.Identity: feedback.New,
		gallery.Identity:  gallery.New,
		hello.Identity:    hello.New,
	}
}
