package depgraph_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/fs"
	"go.trai.ch/depcache/internal/adapters/metrics"
	"go.trai.ch/depcache/internal/adapters/sqlstore"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/depcache/internal/core/ports/mocks"
	"go.trai.ch/depcache/internal/engine/depgraph"
	"go.uber.org/mock/gomock"
)

// countingHasher counts HashFile calls per path.
type countingHasher struct {
	ports.Hasher
	calls atomic.Int64
}

func (c *countingHasher) HashFile(path string) (string, error) {
	c.calls.Add(1)
	return c.Hasher.HashFile(path)
}

type harness struct {
	t      *testing.T
	ctx    context.Context
	dir    string
	store  *sqlstore.Store
	hasher *countingHasher
	logger *mocks.MockLogger
	engine *depgraph.Engine
	clock  time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctx := context.Background()
	dir := t.TempDir()

	store, err := sqlstore.Open(ctx, filepath.Join(dir, domain.MetaDirName, domain.GraphDBFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	inner, err := fs.NewHasher(64)
	require.NoError(t, err)
	hasher := &countingHasher{Hasher: inner}

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	return &harness{
		t:      t,
		ctx:    ctx,
		dir:    dir,
		store:  store,
		hasher: hasher,
		logger: log,
		engine: depgraph.NewEngine(store, fs.NewFileSystem(), hasher, log, metrics.New()),
		clock:  time.Unix(1_700_000_000, 0),
	}
}

// write creates or replaces a file and gives it a modification time later than any before.
func (h *harness) write(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o600))
	h.touch(path)
	return path
}

// touch moves the modification time of path forward without changing its content.
func (h *harness) touch(path string) {
	h.t.Helper()
	h.clock = h.clock.Add(time.Second)
	require.NoError(h.t, os.Chtimes(path, h.clock, h.clock))
}

func (h *harness) remove(path string) {
	h.t.Helper()
	require.NoError(h.t, os.Remove(path))
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) register(out *domain.DependencyInfo, ins ...*domain.DependencyInfo) {
	h.t.Helper()
	for _, in := range ins {
		require.NoError(h.t, h.engine.RegisterInput(h.ctx, out, in, false))
	}
}

func (h *harness) commit(outs ...*domain.DependencyInfo) {
	h.t.Helper()
	require.NoError(h.t, h.engine.UpdateOutputs(h.ctx, outs))
}

func (h *harness) upToDate(path string) bool {
	h.t.Helper()
	ok, err := h.engine.IsUpToDate(h.ctx, path)
	require.NoError(h.t, err)
	return ok
}

func (h *harness) signature(out *domain.DependencyInfo) string {
	h.t.Helper()
	require.NoError(h.t, h.engine.CreateSignature(h.ctx, out))
	return out.Signature
}

func output(path string) *domain.DependencyInfo {
	return domain.NewFileInfo(path, "blob", 0)
}

func orderedOutput(path string) *domain.DependencyInfo {
	return domain.NewFileInfo(path, "blob", domain.GraphConfigInputOrderMatters)
}

func leaf(path string) *domain.DependencyInfo {
	return domain.NewFileInfo(path, "source", domain.GraphConfigLeafInput)
}
