package host

import (
	"context"
	"io"
)

// Hook names for the extension points the lifecycle core registers against.
// The host fires each of these at most once per request, in the order its
// own dispatch loop defines.
const (
	HookBoot         = "host.boot"
	HookPublicAssets = "public.assets"
	HookAdminMenu    = "admin.menu"
	HookAdminInit    = "admin.init"
	HookAdminNotices = "admin.notices"
	HookAdminAssets  = "admin.assets"
)

// DefaultPriority is the hook priority used when a caller has no ordering
// requirement.
const DefaultPriority = 10

// HookFunc is a callback registered against a named hook. Arguments are
// hook-specific; render hooks pass an io.Writer as the first argument.
type HookFunc func(ctx context.Context, args ...any)

// Dispatcher is the host's named-hook registry. The core only registers;
// firing is the host's job.
type Dispatcher interface {
	Register(hook string, fn HookFunc, priority int)
}

// Enqueuer is the host's asset enqueue primitive. placementOrMedia carries
// the script placement ("head" or "footer") or the style media query.
type Enqueuer interface {
	Enqueue(handle, uri string, deps []string, version, placementOrMedia string)
}

// URLResolver maps an on-disk path inside an extension to its public URL.
type URLResolver interface {
	URLFor(path string) (string, error)
}

// SettingsBackend is the host's settings-storage and rendering subsystem.
type SettingsBackend interface {
	RegisterGroup(pageID string)
	RegisterSection(id, title string, render func(w io.Writer), pageID string)
	RegisterField(id, title string, render func(w io.Writer), pageID, sectionID string)
	AddOptionsPage(pageID, title string, show func(w io.Writer))
	RenderSections(pageID string, w io.Writer)
}

// Includer is the host's module-loading primitive. IncludeOnce loads the
// file at path, guaranteeing its top-level side effects run at most once per
// process; it reports whether this call was the first load.
type Includer interface {
	IncludeOnce(path string) (first bool, err error)
}

// LoadFunc resolves a qualified component name, reporting whether it was
// found and loaded.
type LoadFunc func(name string) bool

// LoaderChain is the host's ordered chain of component loaders. The chain
// may hold one legacy fallback loader that predates chained registration;
// registrants that want to preserve it must re-register it explicitly.
type LoaderChain interface {
	Register(fn LoadFunc)
	Resolve(name string) bool
	Fallback() LoadFunc
	SetFallback(fn LoadFunc)
}

// MetadataReader extracts the declared header fields (Name, Version,
// Description, Author, TextDomain, ...) from an extension's source file.
type MetadataReader interface {
	Read(sourceFile string) (map[string]string, error)
}

// Localizer loads translations for a text domain from a directory.
type Localizer interface {
	Load(textDomain, dir string) error
}

// RequestInfo exposes the host's request-context predicates.
type RequestInfo interface {
	IsAdmin() bool
}

// Host bundles every collaborator the lifecycle core calls into, plus the
// running host version the gate compares against.
type Host struct {
	Version string

	URLs     URLResolver
	Hooks    Dispatcher
	Assets   Enqueuer
	Settings SettingsBackend
	Include  Includer
	Loaders  LoaderChain
	Meta     MetadataReader
	L10n     Localizer
	Request  RequestInfo
}
