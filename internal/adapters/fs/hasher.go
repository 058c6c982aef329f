package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// hashKey identifies one version of a file. A file whose size and mtime are unchanged is served from cache.
type hashKey struct {
	path    string
	size    int64
	modTime int64
}

// Hasher computes xxhash64 content hashes and memoizes file hashes.
type Hasher struct {
	cache *lru.Cache[hashKey, string]
}

// NewHasher creates a Hasher remembering up to size file hashes.
func NewHasher(size int) (*Hasher, error) {
	cache, err := lru.New[hashKey, string](size)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create hash cache")
	}
	return &Hasher{cache: cache}, nil
}

// HashFile returns the hex encoded xxhash of a file's content.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is controlled by the caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrHashFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close of a read-only file

	info, err := f.Stat()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "path", path)
	}
	key := hashKey{path: path, size: info.Size(), modTime: info.ModTime().UnixNano()}
	if sum, ok := h.cache.Get(key); ok {
		return sum, nil
	}

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrHashFailed.Error()), "path", path)
	}
	sum := format(digest.Sum64())
	h.cache.Add(key, sum)
	return sum, nil
}

// HashBytes returns the hex encoded xxhash of data.
func (h *Hasher) HashBytes(data []byte) string {
	return format(xxhash.Sum64(data))
}

// NewDigest starts a running xxhash.
func (h *Hasher) NewDigest() ports.Digest {
	return &digest{d: xxhash.New()}
}

// Prehash hashes paths concurrently to warm the cache. Missing files are skipped.
func (h *Hasher) Prehash(ctx context.Context, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := os.Stat(p); err != nil {
				return nil //nolint:nilerr // absent inputs are reported by the graph, not here
			}
			_, err := h.HashFile(p)
			return err
		})
	}
	return g.Wait()
}

// Purge drops every memoized hash.
func (h *Hasher) Purge() {
	h.cache.Purge()
}

type digest struct {
	d *xxhash.Digest
}

func (d *digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

func (d *digest) Sum() string {
	return format(d.d.Sum64())
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
