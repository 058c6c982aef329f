package domain

import (
	"path/filepath"
	"strings"
)

const (
	// MetaDirName is the name of the directory holding depcache state.
	MetaDirName = ".depcache"

	// GraphDBFileName is the name of the SQLite graph database.
	GraphDBFileName = "graph.db"

	// ManifestFileName is the name of the project manifest.
	ManifestFileName = "depcache.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DataPathPrefix prefixes the identity of in-memory inputs so they never collide with files.
	DataPathPrefix = "data://"
)

// DefaultMetaPath returns the default root directory for depcache metadata.
func DefaultMetaPath() string {
	return MetaDirName
}

// DefaultGraphDBPath returns the default path of the graph database.
// It joins .depcache and graph.db.
func DefaultGraphDBPath() string {
	return filepath.Join(MetaDirName, GraphDBFileName)
}

// IsDataPath reports whether path names an in-memory input.
func IsDataPath(path string) bool {
	return strings.HasPrefix(path, DataPathPrefix)
}
