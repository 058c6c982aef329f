package ports

import (
	"context"

	"go.trai.ch/depcache/internal/core/domain"
)

// GraphQueries is the typed query surface over the version, file and graph tables.
// Absent rows are reported with domain.InvalidRowID or a nil record, never with an error.
//
//go:generate mockgen -source=graph_store.go -destination=mocks/mock_graph_store.go -package=mocks
type GraphQueries interface {
	// InsertVersion returns the id of the (type, version) row, creating it when needed.
	InsertVersion(ctx context.Context, typeName, version string) (int64, error)
	// SelectVersionID returns the id of the (type, version) row or domain.InvalidRowID.
	SelectVersionID(ctx context.Context, typeName, version string) (int64, error)
	// SelectFile returns the stored row for path, or nil when the path was never stored.
	SelectFile(ctx context.Context, path string) (*domain.FileRecord, error)
	// ReplaceDependency creates or updates the row of info and returns its id.
	ReplaceDependency(ctx context.Context, info *domain.DependencyInfo, versionID int64) (int64, error)
	// InsertGraph writes one edge, replacing any previous row for the same pair.
	InsertGraph(ctx context.Context, edge domain.GraphEdge) error
	// SelectGraph returns the inputs of an output stored under versionID, ordered by edge index.
	SelectGraph(ctx context.Context, outFileID, versionID int64) ([]domain.GraphRow, error)
	// DeleteGraphPairs removes every edge of outFileID whose input is not in keep.
	DeleteGraphPairs(ctx context.Context, outFileID int64, keep []int64) error
}

// GraphStore is the persistent graph database.
type GraphStore interface {
	GraphQueries
	// WithTx runs fn inside one transaction. The transaction is rolled back when fn fails.
	WithTx(ctx context.Context, fn func(q GraphQueries) error) error
	// Close releases the database handle.
	Close() error
}
