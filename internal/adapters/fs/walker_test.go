package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	mustCreateFile(t, tmpDir, "file1.txt")
	mustCreateFile(t, tmpDir, "dir1/file2.txt")
	mustCreateFile(t, tmpDir, "dir2/file3.txt")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, nil))

	assert.ElementsMatch(t, []string{
		filepath.Join(tmpDir, "file1.txt"),
		filepath.Join(tmpDir, "dir1", "file2.txt"),
		filepath.Join(tmpDir, "dir2", "file3.txt"),
	}, files)
}

func TestWalker_WalkFiles_SkipsMetaDirs(t *testing.T) {
	tmpDir := t.TempDir()
	mustCreateFile(t, tmpDir, ".git/config")
	mustCreateFile(t, tmpDir, ".jj/store")
	mustCreateFile(t, tmpDir, ".depcache/graph.db")
	mustCreateFile(t, tmpDir, "node_modules/pkg/index.js")
	mustCreateFile(t, tmpDir, "src/main.go")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, nil))

	assert.Equal(t, []string{filepath.Join(tmpDir, "src", "main.go")}, files)
}

func TestWalker_WalkFiles_WithIgnores(t *testing.T) {
	tmpDir := t.TempDir()
	mustCreateFile(t, tmpDir, "main.go")
	mustCreateFile(t, tmpDir, "main_test.go")
	mustCreateFile(t, tmpDir, "build/output.bin")

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, []string{"*_test.go", "build"}))

	assert.Equal(t, []string{filepath.Join(tmpDir, "main.go")}, files)
}

func TestWalker_WalkFiles_EarlyBreak(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		mustCreateFile(t, tmpDir, name)
	}

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	files := slices.Collect(fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), nil))
	assert.Empty(t, files)
}

func mustCreateFile(t *testing.T, root, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(rel), 0o600))
	return path
}
