package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// sheet"), 0o644))
}

func TestFindSheetFiles(t *testing.T) {
	t.Run("walks directories recursively", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, filepath.Join(dir, "a.hcl"))
		touch(t, filepath.Join(dir, "sub", "b.hcl"))
		touch(t, filepath.Join(dir, "notes.txt"))

		files, err := FindSheetFiles(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.hcl"),
			filepath.Join(dir, "sub", "b.hcl"),
		}, files)
	})

	t.Run("file path returned as-is", func(t *testing.T) {
		dir := t.TempDir()
		sheet := filepath.Join(dir, "a.hcl")
		touch(t, sheet)

		files, err := FindSheetFiles(sheet)
		require.NoError(t, err)
		assert.Equal(t, []string{sheet}, files)
	})

	t.Run("non-hcl file path filtered", func(t *testing.T) {
		dir := t.TempDir()
		other := filepath.Join(dir, "notes.txt")
		touch(t, other)

		files, err := FindSheetFiles(other)
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing path skipped", func(t *testing.T) {
		files, err := FindSheetFiles(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("overlapping paths deduplicated", func(t *testing.T) {
		dir := t.TempDir()
		sheet := filepath.Join(dir, "a.hcl")
		touch(t, sheet)

		files, err := FindSheetFiles(dir, sheet)
		require.NoError(t, err)
		assert.Equal(t, []string{sheet}, files)
	})
}
