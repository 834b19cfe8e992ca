package singleton

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugkit/internal/assets"
	"github.com/vk/plugkit/internal/extension"
	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/inmemoryhost"
	"github.com/vk/plugkit/internal/spec"
)

// countingExt records how often it is constructed and initialized.
type countingExt struct {
	manifest string
	inits    *int
	initErr  error
}

func (c *countingExt) ManifestPath() string       { return c.manifest }
func (c *countingExt) MinimumHostVersion() string { return "" }
func (c *countingExt) Init(*extension.Runtime) error {
	*c.inits++
	return c.initErr
}

func newTestRegistry(t *testing.T) (*Registry, *host.Host) {
	t.Helper()
	h, _ := inmemoryhost.New(inmemoryhost.Options{Version: "6.4.0"})
	specs := spec.NewCache(h.URLs)
	queue := assets.NewQueue(h.Assets, h.Request)
	return New(h, specs, queue), h
}

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extension.hcl")
	require.NoError(t, os.WriteFile(path, []byte("extension {\n  name = \"T\"\n  version = \"1.0.0\"\n}\n"), 0600))
	return path
}

func TestInstance_ConstructsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	manifest := writeManifest(t)

	inits := 0
	constructions := 0
	r.RegisterFactory(ctx, "acme.widget", func() extension.Extension {
		constructions++
		return &countingExt{manifest: manifest, inits: &inits}
	})

	first, err := r.Instance(ctx, "acme.widget")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, inits)
	assert.True(t, r.Initialized("acme.widget"))

	for i := 0; i < 3; i++ {
		again, err := r.Instance(ctx, "acme.widget")
		require.NoError(t, err)
		assert.Same(t, first, again, "every call must return the identical entry")
	}
	assert.Equal(t, 1, inits, "init must run exactly once")
	assert.Equal(t, 1, constructions, "construction must happen exactly once")
}

func TestInstance_UnknownIdentity(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t)
	_, err := r.Instance(context.Background(), "acme.ghost")
	require.Error(t, err)
	assert.False(t, r.Initialized("acme.ghost"))
}

func TestInstance_InitErrorIsNotFatal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	manifest := writeManifest(t)

	inits := 0
	r.RegisterFactory(ctx, "acme.broken", func() extension.Extension {
		return &countingExt{manifest: manifest, inits: &inits, initErr: errors.New("boom")}
	})

	first, err := r.Instance(ctx, "acme.broken")
	require.NoError(t, err, "init failure is logged, not propagated")

	again, err := r.Instance(ctx, "acme.broken")
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, inits, "a failed init must not be retried")
}

func TestRegisterFactory_DuplicateKeepsFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	manifest := writeManifest(t)

	inits := 0
	r.RegisterFactory(ctx, "acme.widget", func() extension.Extension {
		return &countingExt{manifest: manifest, inits: &inits}
	})
	r.RegisterFactory(ctx, "acme.widget", func() extension.Extension {
		t.Fatal("second factory must never be used")
		return nil
	})

	_, err := r.Instance(ctx, "acme.widget")
	require.NoError(t, err)
	assert.Equal(t, 1, inits)
}

func TestDeclare(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, _ := newTestRegistry(t)
	manifest := writeManifest(t)

	inits := 0
	r.RegisterFactory(ctx, "acme.widget", func() extension.Extension {
		return &countingExt{manifest: manifest, inits: &inits}
	})

	path, minVersion, ok := r.Declare(ctx, "acme.widget")
	require.True(t, ok)
	assert.Equal(t, manifest, path)
	assert.Empty(t, minVersion)
	assert.Zero(t, inits, "declaring must not initialize")

	_, _, ok = r.Declare(ctx, "acme.ghost")
	assert.False(t, ok)
}
