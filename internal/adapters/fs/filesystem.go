package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem reads file metadata from the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Stat describes path. A missing path reports Exists=false without an error.
func (f *FileSystem) Stat(path string) (ports.FileStat, error) {
	info, err := os.Stat(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return ports.FileStat{}, nil
	}
	if err != nil {
		return ports.FileStat{}, zerr.With(zerr.Wrap(err, domain.ErrStatFailed.Error()), "path", path)
	}
	if info.IsDir() {
		return ports.FileStat{}, zerr.With(domain.ErrStatFailed, "path", path)
	}
	return ports.FileStat{
		Exists:  true,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}
