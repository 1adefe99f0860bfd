package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tmpDir := t.TempDir()
	paths := []string{
		"scene.hcl",
		"assets/textures.hcl",
		"assets/readme.md",
		"nested/deep/bodies.hcl",
	}
	for _, p := range paths {
		full := filepath.Join(tmpDir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}

	// --- Act ---
	found, err := FindFilesByExtension(tmpDir, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "assets/textures.hcl"),
		filepath.Join(tmpDir, "nested/deep/bodies.hcl"),
		filepath.Join(tmpDir, "scene.hcl"),
	}, found, "results are in lexical order and exclude other extensions")
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tmpDir := t.TempDir()
	matching := filepath.Join(tmpDir, "scene.hcl")
	other := filepath.Join(tmpDir, "notes.txt")
	require.NoError(t, os.WriteFile(matching, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))

	// --- Act / Assert ---
	found, err := FindFilesByExtension(matching, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{matching}, found)

	found, err = FindFilesByExtension(other, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindFilesByExtension_MissingPath(t *testing.T) {
	t.Parallel()

	// --- Act ---
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "does-not-exist"), ".hcl")

	// --- Assert ---
	require.Error(t, err)
}
