package inmemoryhost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludeOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Thing.hcl")
	require.NoError(t, os.WriteFile(path, []byte("component \"x\" {\n}\n"), 0600))

	inc := NewIncludeOnce()

	first, err := inc.IncludeOnce(path)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := inc.IncludeOnce(path)
	require.NoError(t, err)
	assert.False(t, again, "second include must not re-run the file")
	assert.Equal(t, 2, inc.Loads(path))
	assert.Equal(t, 1, inc.ParsedCount())
}

func TestIncludeOnce_ParseError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("component {"), 0600))

	inc := NewIncludeOnce()
	_, err := inc.IncludeOnce(path)
	require.Error(t, err)
	assert.Zero(t, inc.Loads(path), "a failed include is not recorded as loaded")
}

func TestIncludeOnce_MissingFile(t *testing.T) {
	t.Parallel()

	inc := NewIncludeOnce()
	_, err := inc.IncludeOnce(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}
