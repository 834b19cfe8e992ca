package plug

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugkit/internal/assets"
	"github.com/vk/plugkit/internal/extension"
	"github.com/vk/plugkit/internal/inmemoryhost"
	"github.com/vk/plugkit/internal/singleton"
	"github.com/vk/plugkit/internal/spec"
)

// testExt is a configurable extension fixture.
type testExt struct {
	manifest   string
	minVersion string
	inits      *int
	init       func(rt *extension.Runtime)
}

func (e *testExt) ManifestPath() string { return e.manifest }

func (e *testExt) MinimumHostVersion() string { return e.minVersion }
func (e *testExt) Init(rt *extension.Runtime) error {
	if e.inits != nil {
		*e.inits++
	}
	if e.init != nil {
		e.init(rt)
	}
	return nil
}

// harness bundles a fresh simulated process.
type harness struct {
	b   *Bootstrap
	mem *inmemoryhost.Memory
}

func newHarness(t *testing.T, hostVersion string, admin bool) *harness {
	t.Helper()
	h, mem := inmemoryhost.New(inmemoryhost.Options{Version: hostVersion, Admin: admin})
	specs := spec.NewCache(h.URLs)
	queue := assets.NewQueue(h.Assets, h.Request)
	instances := singleton.New(h, specs, queue)
	return &harness{b: New(h, specs, instances, queue), mem: mem}
}

func (hs *harness) register(t *testing.T, identity string, ext *testExt) {
	t.Helper()
	hs.b.instances.RegisterFactory(context.Background(), identity, func() extension.Extension {
		clone := *ext
		return &clone
	})
}

func writeExtensionDir(t *testing.T, withLanguage bool) string {
	t.Helper()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "extension.hcl")
	content := "extension {\n  name = \"T\"\n  version = \"1.0.0\"\n  text_domain = \"tdom\"\n}\n"
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0600))
	if withLanguage {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "language"), 0700))
	}
	return manifest
}

func TestPlug_FullLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hs := newHarness(t, "6.4.0", false)
	manifest := writeExtensionDir(t, true)

	inits := 0
	hs.register(t, "acme.widget", &testExt{
		manifest: manifest,
		inits:    &inits,
		init: func(rt *extension.Runtime) {
			rt.AddStyle("assets/css/w.css", nil, "")
			rt.AddScript("assets/js/w.js", nil, true)
		},
	})

	require.NoError(t, hs.b.Plug(ctx, "acme.widget", ""))
	assert.Equal(t, StatePlugged, hs.b.State("acme.widget"))
	assert.Equal(t, 1, inits)

	// The host fires the public request phases.
	hs.mem.Dispatcher.Fire(ctx, "host.boot")
	hs.mem.Dispatcher.Fire(ctx, "public.assets")

	entries := hs.mem.Enqueued.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "widget-style-w", entries[0].Handle)
	assert.Equal(t, "widget-script-w", entries[1].Handle)

	loads := hs.mem.L10n.Loaded()
	require.Len(t, loads, 1)
	assert.Equal(t, "tdom", loads[0].Domain, "text domain comes from the manifest headers")
}

func TestPlug_Reentry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hs := newHarness(t, "6.4.0", false)
	hs.register(t, "acme.widget", &testExt{manifest: writeExtensionDir(t, false)})

	require.NoError(t, hs.b.Plug(ctx, "acme.widget", ""))
	hooksAfterFirst := hs.mem.Dispatcher.Count("public.assets")

	err := hs.b.Plug(ctx, "acme.widget", "")
	require.Error(t, err, "re-entry is a programming error")
	assert.Equal(t, hooksAfterFirst, hs.mem.Dispatcher.Count("public.assets"), "nothing may register twice")
	assert.Equal(t, StatePlugged, hs.b.State("acme.widget"))
}

func TestPlug_VersionGate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hs := newHarness(t, "6.4.0", true)
	inits := 0
	hs.register(t, "acme.future", &testExt{
		manifest:   writeExtensionDir(t, false),
		minVersion: "9.9.9",
		inits:      &inits,
	})

	require.NoError(t, hs.b.Plug(ctx, "acme.future", ""))
	assert.Equal(t, StateNotPlugged, hs.b.State("acme.future"))
	assert.Zero(t, inits, "a gated extension must not initialize")

	// Only the warning notice is registered; no asset or settings hooks.
	assert.Zero(t, hs.mem.Dispatcher.Count("admin.assets"))
	assert.Zero(t, hs.mem.Dispatcher.Count("public.assets"))
	assert.Zero(t, hs.mem.Dispatcher.Count("admin.init"))
	assert.Equal(t, 1, hs.mem.Dispatcher.Count("admin.notices"))

	var out strings.Builder
	hs.mem.Dispatcher.Fire(ctx, "admin.notices", &out)
	assert.Contains(t, out.String(), "requires host version 9.9.9")
	assert.Contains(t, out.String(), "6.4.0")

	// A second attempt neither errors nor duplicates the notice.
	require.NoError(t, hs.b.Plug(ctx, "acme.future", ""))
	assert.Equal(t, 1, hs.mem.Dispatcher.Count("admin.notices"))
}

func TestPlug_SettingsHooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	hs := newHarness(t, "6.4.0", true)
	hs.register(t, "acme.widget", &testExt{
		manifest: writeExtensionDir(t, false),
		init: func(rt *extension.Runtime) {
			rt.AddSection("general", "General", "")
			rt.AddField("general", "mode", "Mode", func(w io.Writer) {})
		},
	})

	require.NoError(t, hs.b.Plug(ctx, "acme.widget", ""))
	hs.mem.Dispatcher.Fire(ctx, "admin.menu")
	hs.mem.Dispatcher.Fire(ctx, "admin.init")

	assert.Equal(t, 1, hs.mem.Settings.PageCount())
	assert.Equal(t, []string{"acme-widget"}, hs.mem.Settings.Groups())
	assert.Equal(t, []string{"general"}, hs.mem.Settings.SectionIDs("acme-widget"))
}

func TestVersionSatisfied(t *testing.T) {
	t.Parallel()

	assert.True(t, versionSatisfied("6.4.0", ""))
	assert.True(t, versionSatisfied("6.4.0", "6.4.0"))
	assert.True(t, versionSatisfied("6.4.1", "6.4.0"))
	assert.True(t, versionSatisfied("v7.0.0", "6.4.0"))
	assert.False(t, versionSatisfied("6.3.9", "6.4.0"))
	assert.False(t, versionSatisfied("", "1.0.0"))
	assert.False(t, versionSatisfied("not-a-version", "1.0.0"))
}
