package sqlstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depcache/internal/adapters/sqlstore"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
)

func openStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	store, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "nested", "graph.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func putFile(t *testing.T, q ports.GraphQueries, path string, versionID int64) int64 {
	t.Helper()
	info := domain.NewFileInfo(path, "blob", 0)
	id, err := q.ReplaceDependency(context.Background(), info, versionID)
	require.NoError(t, err)
	return id
}

func TestStore_InsertVersion_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	missing, err := store.SelectVersionID(ctx, "blob", "1")
	require.NoError(t, err)
	assert.Equal(t, domain.InvalidRowID, missing)

	first, err := store.InsertVersion(ctx, "blob", "1")
	require.NoError(t, err)
	second, err := store.InsertVersion(ctx, "blob", "1")
	require.NoError(t, err)
	other, err := store.InsertVersion(ctx, "blob", "2")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)

	selected, err := store.SelectVersionID(ctx, "blob", "1")
	require.NoError(t, err)
	assert.Equal(t, first, selected)
	assert.Equal(t, "sqlite", store.Dialect())
}

func TestStore_ReplaceDependency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	v1, err := store.InsertVersion(ctx, "obj", "1")
	require.NoError(t, err)
	v2, err := store.InsertVersion(ctx, "obj", "2")
	require.NoError(t, err)

	info := domain.NewFileInfo("/src/a.o", "obj", domain.GraphConfigInputOrderMatters)
	info.Size = 12
	info.LastModified = 100
	info.ContentHash = "abc"

	id, err := store.ReplaceDependency(ctx, info, v1)
	require.NoError(t, err)

	info.ContentHash = "def"
	info.Signature = "SIG"
	again, err := store.ReplaceDependency(ctx, info, v2)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	rec, err := store.SelectFile(ctx, "/src/a.o")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.FileRecord{
		ID:                id,
		Path:              "/src/a.o",
		VersionID:         v2,
		TypeName:          "obj",
		FormatVersion:     "2",
		InputOrderMatters: true,
		LastModified:      100,
		Size:              12,
		ContentHash:       "def",
		Signature:         "SIG",
	}, *rec)
	assert.Equal(t, domain.GraphConfigInputOrderMatters, rec.GraphConfigs())

	_, err = store.ReplaceDependency(ctx, info, domain.InvalidRowID)
	require.ErrorContains(t, err, domain.ErrInvalidRowID.Error())
}

func TestStore_SelectFile_Absent(t *testing.T) {
	t.Parallel()

	rec, err := openStore(t).SelectFile(context.Background(), "/nowhere")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_Graph(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	v, err := store.InsertVersion(ctx, "blob", "1")
	require.NoError(t, err)

	out := putFile(t, store, "/out", v)
	a := putFile(t, store, "/a", v)
	b := putFile(t, store, "/b", v)
	c := putFile(t, store, "/c", v)

	for i, in := range []int64{c, a, b} {
		require.NoError(t, store.InsertGraph(ctx, domain.GraphEdge{
			OutFileID:      out,
			InFileID:       in,
			InLastModified: int64(10 * (i + 1)),
			OrderIndex:     i,
			CanBeMissing:   in == b,
			Existed:        in != b,
		}))
	}

	rows, err := store.SelectGraph(ctx, out, v)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "/c", rows[0].Input.Path)
	assert.Equal(t, "/a", rows[1].Input.Path)
	assert.Equal(t, "/b", rows[2].Input.Path)
	assert.Equal(t, int64(20), rows[1].Edge.InLastModified)
	assert.True(t, rows[2].Edge.CanBeMissing)
	assert.False(t, rows[2].Edge.Existed)
	assert.True(t, rows[0].Edge.Existed)

	t.Run("other version sees nothing", func(t *testing.T) {
		rows, err := store.SelectGraph(ctx, out, v+100)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("reinserting a pair replaces it", func(t *testing.T) {
		require.NoError(t, store.InsertGraph(ctx, domain.GraphEdge{
			OutFileID: out, InFileID: a, InLastModified: 99, OrderIndex: 1, Existed: true,
		}))
		rows, err := store.SelectGraph(ctx, out, v)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, int64(99), rows[1].Edge.InLastModified)
	})

	t.Run("delete prunes pairs outside keep", func(t *testing.T) {
		require.NoError(t, store.DeleteGraphPairs(ctx, out, []int64{c, a}))
		rows, err := store.SelectGraph(ctx, out, v)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "/c", rows[0].Input.Path)
		assert.Equal(t, "/a", rows[1].Input.Path)

		require.NoError(t, store.DeleteGraphPairs(ctx, out, nil))
		rows, err = store.SelectGraph(ctx, out, v)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("invalid ids are rejected", func(t *testing.T) {
		err := store.InsertGraph(ctx, domain.GraphEdge{OutFileID: domain.InvalidRowID, InFileID: a})
		require.ErrorContains(t, err, domain.ErrInvalidRowID.Error())
	})
}

func TestStore_WithTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openStore(t)

	boom := errors.New("boom")
	err := store.WithTx(ctx, func(q ports.GraphQueries) error {
		v, err := q.InsertVersion(ctx, "blob", "1")
		require.NoError(t, err)
		putFile(t, q, "/rolled-back", v)
		return boom
	})
	require.ErrorIs(t, err, boom)

	rec, err := store.SelectFile(ctx, "/rolled-back")
	require.NoError(t, err)
	assert.Nil(t, rec)

	err = store.WithTx(ctx, func(q ports.GraphQueries) error {
		v, err := q.InsertVersion(ctx, "blob", "1")
		if err != nil {
			return err
		}
		putFile(t, q, "/committed", v)
		return nil
	})
	require.NoError(t, err)

	rec, err = store.SelectFile(ctx, "/committed")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "/committed", rec.Path)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.db")

	store, err := sqlstore.Open(ctx, path)
	require.NoError(t, err)
	v, err := store.InsertVersion(ctx, "blob", "1")
	require.NoError(t, err)
	putFile(t, store, "/kept", v)
	require.NoError(t, store.Close())

	reopened, err := sqlstore.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close() //nolint:errcheck // test cleanup

	rec, err := reopened.SelectFile(ctx, "/kept")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, v, rec.VersionID)
}

func TestStore_Lazy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dsn := ""
	store := sqlstore.New(func() string { return dsn })
	require.NoError(t, store.Close())
	assert.Empty(t, store.Dialect())

	dsn = ":memory:"
	id, err := store.InsertVersion(ctx, "blob", "1")
	require.NoError(t, err)
	assert.NotEqual(t, domain.InvalidRowID, id)

	require.NoError(t, store.Close())
	_, err = store.SelectFile(ctx, "/x")
	require.ErrorContains(t, err, domain.ErrStoreOpenFailed.Error())
}
