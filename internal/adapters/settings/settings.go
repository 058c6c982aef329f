// Package settings reads process level options from the environment.
package settings

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"go.trai.ch/depcache/internal/core/domain"
)

const (
	// EnvDSN selects the graph database. A postgres:// URL selects PostgreSQL, anything else is a SQLite path.
	EnvDSN = "DEPCACHE_DSN"
	// EnvLogFormat selects "json" or "pretty" logs.
	EnvLogFormat = "DEPCACHE_LOG_FORMAT"
	// EnvHashCacheSize bounds the number of memoized file hashes.
	EnvHashCacheSize = "DEPCACHE_HASH_CACHE_SIZE"

	// DefaultHashCacheSize is used when EnvHashCacheSize is unset or invalid.
	DefaultHashCacheSize = 4096
)

// Settings are the process level options read from the environment and an optional .env file.
type Settings struct {
	mu            sync.RWMutex
	dsn           string
	JSONLogs      bool
	HashCacheSize int
}

// LoadSettings reads the environment. Files are .env style files loaded first; missing files are ignored.
// Variables already present in the environment win over file values.
func LoadSettings(files ...string) *Settings {
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	size := DefaultHashCacheSize
	if raw := strings.TrimSpace(os.Getenv(EnvHashCacheSize)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}

	return &Settings{
		dsn:           strings.TrimSpace(os.Getenv(EnvDSN)),
		JSONLogs:      strings.EqualFold(strings.TrimSpace(os.Getenv(EnvLogFormat)), "json"),
		HashCacheSize: size,
	}
}

// DSN returns the configured database.
func (s *Settings) DSN() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dsn
}

// SetDSN overrides the configured database.
func (s *Settings) SetDSN(dsn string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dsn = strings.TrimSpace(dsn)
}

// AnchorDSN makes the database location relative to the project root.
// An empty DSN becomes root/.depcache/graph.db and relative SQLite paths are joined to root.
func (s *Settings) AnchorDSN(root string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.dsn == "":
		s.dsn = filepath.Join(root, domain.DefaultGraphDBPath())
	case s.dsn == ":memory:", isURL(s.dsn), filepath.IsAbs(s.dsn):
	default:
		s.dsn = filepath.Join(root, s.dsn)
	}
}

func isURL(dsn string) bool {
	return strings.Contains(dsn, "://")
}
