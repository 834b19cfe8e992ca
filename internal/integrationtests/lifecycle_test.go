package integrationtests

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugkit/internal/app"
	"github.com/vk/plugkit/modules/feedback"
	"github.com/vk/plugkit/modules/gallery"
	"github.com/vk/plugkit/modules/hello"
)

// modulesDir locates the in-tree example extensions relative to this file,
// so tests work regardless of the working directory.
func modulesDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "modules")
}

func newApp(t *testing.T, hostVersion, audience string) (*app.App, *bytes.Buffer) {
	t.Helper()
	cfg, err := app.NewConfig(app.Config{
		ExtensionsPath: modulesDir(t),
		HostVersion:    hostVersion,
		Audience:       audience,
		LogLevel:       "error",
		LogFormat:      "text",
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return app.NewApp(out, cfg, nil), out
}

func TestRun_PublicRequest(t *testing.T) {
	t.Parallel()

	a, out := newApp(t, "6.4.0", app.AudiencePublic)
	require.NoError(t, a.Run(context.Background()))

	_, mem := a.Host()

	var handles []string
	for _, e := range mem.Enqueued.Entries() {
		handles = append(handles, e.Handle)
	}
	// Public surface only: gallery style before scripts, no admin assets.
	assert.Contains(t, handles, "gallery-style-gallery")
	assert.Contains(t, handles, "gallery-script-gallery")
	assert.Contains(t, handles, "hello-script-hello")
	assert.NotContains(t, handles, "gallery-style-gallery-admin")
	assert.NotContains(t, handles, "feedback-style-feedback-admin")

	// No settings activity on the public surface.
	assert.Zero(t, mem.Settings.PageCount())
	assert.Empty(t, mem.Settings.Groups())

	assert.Contains(t, out.String(), "Gallery", "report lists manifest names")
	assert.Contains(t, out.String(), "plugged")
}

func TestRun_AdminRequest(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, "6.4.0", app.AudienceAdmin)
	require.NoError(t, a.Run(context.Background()))

	_, mem := a.Host()

	var handles []string
	for _, e := range mem.Enqueued.Entries() {
		handles = append(handles, e.Handle)
	}
	assert.Contains(t, handles, "gallery-style-gallery-admin")
	assert.Contains(t, handles, "feedback-style-feedback-admin")
	assert.NotContains(t, handles, "gallery-script-gallery", "public assets stay out of admin requests")

	// Feedback's settings page registered and populated.
	require.Equal(t, 1, mem.Settings.PageCount())
	assert.Equal(t, []string{"plugkit-feedback"}, mem.Settings.Groups())
	assert.Equal(t, []string{"inbox", "form"}, mem.Settings.SectionIDs("plugkit-feedback"))
	assert.Equal(t, []string{"notify-address", "digest", "max-length"}, mem.Settings.FieldIDs("plugkit-feedback"))

	// Gallery's carousel component resolved through the loader chain.
	assert.Equal(t, 1, mem.Includes.ParsedCount())
}

func TestRun_VersionGate(t *testing.T) {
	t.Parallel()

	a, out := newApp(t, "5.9.0", app.AudienceAdmin)
	require.NoError(t, a.Run(context.Background()))

	b := a.Bootstrap()
	assert.Equal(t, "not-plugged", b.State(feedback.Identity).String())
	assert.Equal(t, "plugged", b.State(gallery.Identity).String())
	assert.Equal(t, "plugged", b.State(hello.Identity).String())

	_, mem := a.Host()

	// The gated extension contributed nothing but its notice.
	var handles []string
	for _, e := range mem.Enqueued.Entries() {
		handles = append(handles, e.Handle)
	}
	assert.NotContains(t, handles, "feedback-style-feedback-admin")
	assert.Zero(t, mem.Settings.PageCount())

	assert.Contains(t, out.String(), "requires host version 6.0.0")
}

func TestRun_Localization(t *testing.T) {
	t.Parallel()

	a, _ := newApp(t, "6.4.0", app.AudiencePublic)
	require.NoError(t, a.Run(context.Background()))

	_, mem := a.Host()
	loads := mem.L10n.Loaded()
	require.Len(t, loads, 1, "only gallery ships a language directory")
	assert.Equal(t, "gallery", loads[0].Domain)
}
