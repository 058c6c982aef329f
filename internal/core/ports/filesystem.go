package ports

// FileStat is what the graph needs to know about a path on disk.
type FileStat struct {
	Exists  bool
	Size    int64
	ModTime int64
}

// FileSystem supplies existence, size and modification times.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Stat describes path. A missing path is not an error.
	Stat(path string) (FileStat, error)
}
