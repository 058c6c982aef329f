package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/fs"
)

func TestResolver_ResolveInputs(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	mustCreateFile(t, rootDir, "main.go")
	mustCreateFile(t, rootDir, "utils.go")
	mustCreateFile(t, rootDir, "pkg/lib.go")
	mustCreateFile(t, rootDir, "pkg/inner/deep.go")
	mustCreateFile(t, rootDir, "other/README.md")

	resolver := fs.NewResolver(fs.NewWalker())

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "globs",
			patterns: []string{"*.go", "pkg/*.go"},
			want:     []string{"main.go", "pkg/lib.go", "utils.go"},
		},
		{
			name:     "deduplication",
			patterns: []string{"*.go", "main.go"},
			want:     []string{"main.go", "utils.go"},
		},
		{
			name:     "double star",
			patterns: []string{"**/*.go"},
			want:     []string{"main.go", "pkg/inner/deep.go", "pkg/lib.go", "utils.go"},
		},
		{
			name:     "double star below directory",
			patterns: []string{"pkg/**"},
			want:     []string{"pkg/inner/deep.go", "pkg/lib.go"},
		},
		{
			name:     "no matches",
			patterns: []string{"*.java"},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resolved, err := resolver.ResolveInputs(tt.patterns, rootDir)
			require.NoError(t, err)

			want := make([]string, 0, len(tt.want))
			for _, rel := range tt.want {
				want = append(want, filepath.Join(rootDir, filepath.FromSlash(rel)))
			}
			assert.Equal(t, want, resolved)
		})
	}
}

func TestResolver_ResolveInputs_BadPattern(t *testing.T) {
	t.Parallel()

	resolver := fs.NewResolver(fs.NewWalker())
	_, err := resolver.ResolveInputs([]string{"[invalid"}, t.TempDir())
	require.ErrorContains(t, err, "invalid glob pattern")
}
