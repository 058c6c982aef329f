package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/config"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), domain.FilePerm)
	require.NoError(t, err)
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockInputResolver) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockResolver := mocks.NewMockInputResolver(ctrl)
	return config.NewLoader(mockLogger, mockResolver), mockResolver
}

func TestLoader_Load(t *testing.T) {
	loader, resolver := newLoader(t)
	root := t.TempDir()

	createFile(t, root, domain.ManifestFileName, `
version: "1"
types:
  mesh: "3"
outputs:
  - path: build/lib.o
    inputs:
      - path: src/lib.c
  - path: build/app.bin
    type: mesh
    orderMatters: true
    inputs:
      - path: build/lib.o
      - glob: "assets/*.png"
      - path: src/extra.txt
        optional: true
      - name: quality
        data: "high"
`)
	resolver.EXPECT().
		ResolveInputs([]string{"assets/*.png"}, root).
		Return([]string{filepath.Join(root, "assets", "a.png"), filepath.Join(root, "assets", "b.png")}, nil)

	plan, err := loader.Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, plan.Root)
	assert.Equal(t, map[string]string{"mesh": "3"}, plan.FormatVersions)

	app, ok := plan.Output(filepath.Join(root, "build", "app.bin"))
	require.True(t, ok)
	assert.Equal(t, "mesh", app.TypeName)
	assert.True(t, app.OrderMatters)
	require.Len(t, app.Inputs, 5)
	assert.Equal(t, filepath.Join(root, "build", "lib.o"), app.Inputs[0].Path)
	assert.Equal(t, filepath.Join(root, "assets", "a.png"), app.Inputs[1].Path)
	assert.Equal(t, filepath.Join(root, "assets", "b.png"), app.Inputs[2].Path)
	assert.True(t, app.Inputs[3].Optional)
	assert.True(t, app.Inputs[4].IsData)
	assert.Equal(t, domain.DataPathPrefix+"quality", app.Inputs[4].Path)
	assert.Equal(t, []byte("high"), app.Inputs[4].Data)

	order, err := plan.Order(nil)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, filepath.Join(root, "build", "lib.o"), order[0].Path)
}

func TestLoader_Load_DiscoversManifestUpwards(t *testing.T) {
	loader, _ := newLoader(t)
	root := t.TempDir()
	createFile(t, root, domain.ManifestFileName, "version: \"1\"\n")

	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, domain.DirPerm))

	found, err := loader.DiscoverRoot(sub)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name        string
		manifest    string
		errContains string
	}{
		{
			name:        "unknown field",
			manifest:    "version: \"1\"\nbogus: true\n",
			errContains: "failed to parse manifest",
		},
		{
			name: "unknown type",
			manifest: `
outputs:
  - path: out.bin
    type: nope
    inputs:
      - path: in.txt
`,
			errContains: "type not declared in manifest",
		},
		{
			name: "input sets two sources",
			manifest: `
outputs:
  - path: out.bin
    inputs:
      - path: in.txt
        glob: "*.txt"
`,
			errContains: "input must set exactly one of path, glob or data",
		},
		{
			name: "data without name",
			manifest: `
outputs:
  - path: out.bin
    inputs:
      - data: "x"
`,
			errContains: "dependency path is empty",
		},
		{
			name: "duplicate output",
			manifest: `
outputs:
  - path: out.bin
  - path: out.bin
`,
			errContains: "output already declared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := newLoader(t)
			root := t.TempDir()
			createFile(t, root, domain.ManifestFileName, tt.manifest)

			_, err := loader.Load(root)
			require.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestLoader_Load_NoManifest(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(t.TempDir())
	require.ErrorContains(t, err, "could not find depcache.yaml")
}
