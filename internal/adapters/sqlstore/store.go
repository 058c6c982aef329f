// Package sqlstore implements the graph database on database/sql, backed by SQLite or PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const memoryDSN = ":memory:"

var errStoreClosed = zerr.New("store is closed")

var _ ports.GraphStore = (*Store)(nil)

// Store is the graph database. It connects on first use.
type Store struct {
	dsn func() string

	openOnce sync.Once
	openErr  error
	mu       sync.Mutex
	db       *sql.DB
	dialect  dialect
}

// New creates a store that opens the database named by dsn on first use.
// dsn is read once, when the first query runs.
func New(dsn func() string) *Store {
	return &Store{dsn: dsn}
}

// Open creates a store and connects immediately.
func Open(ctx context.Context, dsn string) (*Store, error) {
	s := New(func() string { return dsn })
	if _, err := s.conn(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Dialect returns the name of the SQL dialect in use, or an empty string before the first query.
func (s *Store) Dialect() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ""
	}
	return s.dialect.String()
}

func (s *Store) conn(ctx context.Context) (*sql.DB, error) {
	s.openOnce.Do(func() {
		db, d, err := open(ctx, s.dsn())
		s.mu.Lock()
		s.db, s.dialect, s.openErr = db, d, err
		s.mu.Unlock()
	})
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, zerr.Wrap(errStoreClosed, domain.ErrStoreOpenFailed.Error())
	}
	return s.db, nil
}

func open(ctx context.Context, dsn string) (*sql.DB, dialect, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = domain.DefaultGraphDBPath()
	}
	d := dialectFor(dsn)

	source := dsn
	if d == dialectSQLite {
		var err error
		if source, err = sqliteSource(dsn); err != nil {
			return nil, d, err
		}
	}

	db, err := sql.Open(d.driverName(), source)
	if err != nil {
		return nil, d, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "dialect", d.String())
	}

	if d == dialectSQLite {
		// One connection serializes writers and keeps an in-memory database alive.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
			_ = db.Close()
			return nil, d, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
		}
		if dsn != memoryDSN {
			if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
				_ = db.Close()
				return nil, d, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
			}
		}
	}

	if err := ensureSchema(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, d, err
	}
	return db, d, nil
}

func sqliteSource(path string) (string, error) {
	if path == memoryDSN {
		return path, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", dir)
		}
	}
	return path + "?_pragma=busy_timeout(5000)", nil
}

func ensureSchema(ctx context.Context, db *sql.DB, d dialect) error {
	for stmt := range strings.SplitSeq(d.schema(), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreSchemaFailed.Error()), "dialect", d.String())
		}
	}
	return nil
}

func (s *Store) queries(ctx context.Context) (*queries, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	return &queries{ex: db, d: s.dialect}, nil
}

// WithTx runs fn inside one transaction and rolls back when fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(q ports.GraphQueries) error) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.StoreError{Op: "begin", Err: err}
	}
	if err := fn(&queries{ex: tx, d: s.dialect}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return &domain.StoreError{Op: "commit", Err: err}
	}
	return nil
}

// Close releases the database handle. It is safe to call on a store that never connected.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// InsertVersion implements ports.GraphQueries.
func (s *Store) InsertVersion(ctx context.Context, typeName, version string) (int64, error) {
	q, err := s.queries(ctx)
	if err != nil {
		return domain.InvalidRowID, err
	}
	return q.InsertVersion(ctx, typeName, version)
}

// SelectVersionID implements ports.GraphQueries.
func (s *Store) SelectVersionID(ctx context.Context, typeName, version string) (int64, error) {
	q, err := s.queries(ctx)
	if err != nil {
		return domain.InvalidRowID, err
	}
	return q.SelectVersionID(ctx, typeName, version)
}

// SelectFile implements ports.GraphQueries.
func (s *Store) SelectFile(ctx context.Context, path string) (*domain.FileRecord, error) {
	q, err := s.queries(ctx)
	if err != nil {
		return nil, err
	}
	return q.SelectFile(ctx, path)
}

// ReplaceDependency implements ports.GraphQueries.
func (s *Store) ReplaceDependency(ctx context.Context, info *domain.DependencyInfo, versionID int64) (int64, error) {
	q, err := s.queries(ctx)
	if err != nil {
		return domain.InvalidRowID, err
	}
	return q.ReplaceDependency(ctx, info, versionID)
}

// InsertGraph implements ports.GraphQueries.
func (s *Store) InsertGraph(ctx context.Context, edge domain.GraphEdge) error {
	q, err := s.queries(ctx)
	if err != nil {
		return err
	}
	return q.InsertGraph(ctx, edge)
}

// SelectGraph implements ports.GraphQueries.
func (s *Store) SelectGraph(ctx context.Context, outFileID, versionID int64) ([]domain.GraphRow, error) {
	q, err := s.queries(ctx)
	if err != nil {
		return nil, err
	}
	return q.SelectGraph(ctx, outFileID, versionID)
}

// DeleteGraphPairs implements ports.GraphQueries.
func (s *Store) DeleteGraphPairs(ctx context.Context, outFileID int64, keep []int64) error {
	q, err := s.queries(ctx)
	if err != nil {
		return err
	}
	return q.DeleteGraphPairs(ctx, outFileID, keep)
}
