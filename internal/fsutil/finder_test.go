package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.hcl", "a.HCL", "sub/c.hcl", "d.yaml", "e.txt")

	got, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.HCL"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "sub", "c.hcl"),
	}, got)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root) })
}

func TestExpandPaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "dir/a.yaml", "dir/b.yml", "dir/c.hcl", "single.conf")

	got, err := ExpandPaths([]string{
		filepath.Join(root, "dir"),
		filepath.Join(root, "single.conf"),
		filepath.Join(root, "dir", "a.yaml"),
	}, ".yaml", ".yml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "dir", "a.yaml"),
		filepath.Join(root, "dir", "b.yml"),
		filepath.Join(root, "single.conf"),
	}, got)
}

func TestExpandPaths_MissingPath(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.hcl")

	for _, missing := range []string{
		filepath.Join(root, "typo.hcl"),
		filepath.Join(root, "no-such-dir"),
	} {
		t.Run(filepath.Base(missing), func(t *testing.T) {
			got, err := ExpandPaths([]string{filepath.Join(root, "a.hcl"), missing}, ".hcl")

			require.ErrorIs(t, err, fs.ErrNotExist)
			assert.ErrorContains(t, err, missing)
			assert.Nil(t, got)
		})
	}
}
