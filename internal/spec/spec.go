package spec

import (
	"context"

	"github.com/vk/plugkit/internal/diag"
)

// Spec is the runtime descriptor of one extension: its identity and its
// file-system layout. A Spec is computed once per identity and never
// mutated afterwards; the layout of an installed extension cannot change
// mid-request.
type Spec struct {
	// Identity is the qualified name of the concrete extension,
	// e.g. "plugkit.gallery".
	Identity string

	// ShortName is the last segment of Identity.
	ShortName string

	// SourceFile is the manifest file that declares the extension.
	SourceFile string

	// RootDir is the directory containing SourceFile, with a trailing
	// separator.
	RootDir string

	// PublicURL is the host-resolved URL for RootDir, with a trailing slash.
	PublicURL string

	// AutoloadRoot is RootDir/frameworks when that directory exists,
	// empty otherwise.
	AutoloadRoot string

	// LanguageDir is RootDir/language when that directory exists,
	// empty otherwise.
	LanguageDir string

	// MinHostVersion is the extension's declared minimum host version.
	// Empty means no constraint.
	MinHostVersion string

	// SettingsPageID is the slug identifying the extension's settings page.
	SettingsPageID string
}

// Field looks up a spec field by its wire name. Unknown names are a logged
// programming error; both unknown and unset fields yield "" so callers can
// degrade gracefully.
func (s *Spec) Field(ctx context.Context, name string) string {
	var value string
	switch name {
	case "identity":
		value = s.Identity
	case "short_name":
		value = s.ShortName
	case "source_file":
		value = s.SourceFile
	case "root_dir":
		value = s.RootDir
	case "public_url":
		value = s.PublicURL
	case "autoload_root":
		value = s.AutoloadRoot
	case "language_dir":
		value = s.LanguageDir
	case "min_host_version":
		value = s.MinHostVersion
	case "settings_page_id":
		value = s.SettingsPageID
	default:
		diag.ProgrammingError(ctx, "unknown spec field requested", "field", name, "identity", s.Identity)
		return ""
	}

	if value == "" {
		diag.FromContext(ctx).Debug("Spec field is unset.", "field", name, "identity", s.Identity)
	}
	return value
}
