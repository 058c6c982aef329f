package ports

import (
	"context"
	"io"
)

// Digest is a running hash.
type Digest interface {
	io.Writer
	// Sum returns the hex encoded digest.
	Sum() string
}

// Hasher defines the interface for computing content hashes.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the hex encoded hash of a file's content.
	HashFile(path string) (string, error)
	// HashBytes returns the hex encoded hash of data.
	HashBytes(data []byte) string
	// NewDigest starts a running hash.
	NewDigest() Digest
	// Prehash hashes paths concurrently so later HashFile calls are served from cache.
	Prehash(ctx context.Context, paths []string) error
}
