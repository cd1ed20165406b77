package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	return path
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0700))

	want := []string{
		writeFile(t, dir, "a.hcl"),
		writeFile(t, nested, "b.hcl"),
	}
	writeFile(t, dir, "ignored.txt")

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.ElementsMatch(t, want, files)
}

func TestFindFilesByExtensionEmptyDir(t *testing.T) {
	t.Parallel()

	files, err := FindFilesByExtension(t.TempDir(), ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	t.Run("file expands to itself", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "only.hcl")

		files, err := ExpandPath(path, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("directory expands to matching files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "a.hcl")
		writeFile(t, dir, "b.json")

		files, err := ExpandPath(dir, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("missing path errors", func(t *testing.T) {
		t.Parallel()

		_, err := ExpandPath(filepath.Join(t.TempDir(), "absent"), ".hcl")
		require.Error(t, err)
	})
}
