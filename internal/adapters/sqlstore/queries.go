package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.trai.ch/depcache/internal/core/domain"
	"go.trai.ch/depcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.GraphQueries = (*queries)(nil)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries runs the graph statements on a database or a transaction.
type queries struct {
	ex execer
	d  dialect
}

const (
	selectVersionSQL = `SELECT id FROM version WHERE spec_name = ? AND version = ?`

	insertVersionSQL = `INSERT INTO version (spec_name, version) VALUES (?, ?)
ON CONFLICT (spec_name, version) DO NOTHING
RETURNING id`

	selectFileSQL = `SELECT f.id, f.path, f.version_id, v.spec_name, v.version, f.is_leaf, f.input_order_matters,
	f.last_modified, f.size, f.content_hash, f.signature
FROM file f
JOIN version v ON v.id = f.version_id
WHERE f.path = ?`

	replaceFileSQL = `INSERT INTO file (path, version_id, is_leaf, input_order_matters, last_modified, size, content_hash, signature)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (path) DO UPDATE SET
	version_id = excluded.version_id,
	is_leaf = excluded.is_leaf,
	input_order_matters = excluded.input_order_matters,
	last_modified = excluded.last_modified,
	size = excluded.size,
	content_hash = excluded.content_hash,
	signature = excluded.signature
RETURNING id`

	insertGraphSQL = `INSERT INTO graph (out_file_id, in_file_id, in_last_modified, in_file_order_index, in_can_be_missing, in_file_existed)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (out_file_id, in_file_id) DO UPDATE SET
	in_last_modified = excluded.in_last_modified,
	in_file_order_index = excluded.in_file_order_index,
	in_can_be_missing = excluded.in_can_be_missing,
	in_file_existed = excluded.in_file_existed`

	selectGraphSQL = `SELECT g.out_file_id, g.in_file_id, g.in_last_modified, g.in_file_order_index, g.in_can_be_missing, g.in_file_existed,
	i.id, i.path, i.version_id, iv.spec_name, iv.version, i.is_leaf, i.input_order_matters,
	i.last_modified, i.size, i.content_hash, i.signature
FROM graph g
JOIN file o ON o.id = g.out_file_id
JOIN file i ON i.id = g.in_file_id
JOIN version iv ON iv.id = i.version_id
WHERE g.out_file_id = ? AND o.version_id = ?
ORDER BY g.in_file_order_index`

	deleteGraphSQL = `DELETE FROM graph WHERE out_file_id = ?`
)

func (q *queries) SelectVersionID(ctx context.Context, typeName, version string) (int64, error) {
	var id int64
	err := q.ex.QueryRowContext(ctx, q.d.rebind(selectVersionSQL), typeName, version).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InvalidRowID, nil
	}
	if err != nil {
		return domain.InvalidRowID, &domain.StoreError{Op: "select version", Err: err}
	}
	return id, nil
}

// InsertVersion is get-or-create. Losing an insert race to another writer is not an error.
func (q *queries) InsertVersion(ctx context.Context, typeName, version string) (int64, error) {
	id, err := q.SelectVersionID(ctx, typeName, version)
	if err != nil || id != domain.InvalidRowID {
		return id, err
	}

	err = q.ex.QueryRowContext(ctx, q.d.rebind(insertVersionSQL), typeName, version).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, sql.ErrNoRows), isUniqueViolation(err):
		return q.SelectVersionID(ctx, typeName, version)
	default:
		return domain.InvalidRowID, &domain.StoreError{Op: "insert version", Err: err}
	}
}

func (q *queries) SelectFile(ctx context.Context, path string) (*domain.FileRecord, error) {
	rec, err := scanFile(q.ex.QueryRowContext(ctx, q.d.rebind(selectFileSQL), path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // an absent row is not an error
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "select file", Err: err}
	}
	return rec, nil
}

func (q *queries) ReplaceDependency(ctx context.Context, info *domain.DependencyInfo, versionID int64) (int64, error) {
	if versionID == domain.InvalidRowID {
		return domain.InvalidRowID, zerr.With(domain.ErrInvalidRowID, "path", info.Path)
	}
	var id int64
	err := q.ex.QueryRowContext(ctx, q.d.rebind(replaceFileSQL),
		info.Path,
		versionID,
		boolToInt(info.IsLeaf()),
		boolToInt(info.OrderMatters()),
		info.LastModified,
		info.Size,
		info.ContentHash,
		info.Signature,
	).Scan(&id)
	if err != nil {
		return domain.InvalidRowID, &domain.StoreError{Op: "replace dependency", Err: err}
	}
	return id, nil
}

func (q *queries) InsertGraph(ctx context.Context, edge domain.GraphEdge) error {
	if edge.OutFileID == domain.InvalidRowID || edge.InFileID == domain.InvalidRowID {
		return zerr.With(zerr.With(domain.ErrInvalidRowID, "out_file_id", edge.OutFileID), "in_file_id", edge.InFileID)
	}
	_, err := q.ex.ExecContext(ctx, q.d.rebind(insertGraphSQL),
		edge.OutFileID,
		edge.InFileID,
		edge.InLastModified,
		edge.OrderIndex,
		boolToInt(edge.CanBeMissing),
		boolToInt(edge.Existed),
	)
	if err != nil {
		return &domain.StoreError{Op: "insert graph", Err: err}
	}
	return nil
}

func (q *queries) SelectGraph(ctx context.Context, outFileID, versionID int64) ([]domain.GraphRow, error) {
	rows, err := q.ex.QueryContext(ctx, q.d.rebind(selectGraphSQL), outFileID, versionID)
	if err != nil {
		return nil, &domain.StoreError{Op: "select graph", Err: err}
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var out []domain.GraphRow
	for rows.Next() {
		var (
			row                                  domain.GraphRow
			canBeMissing, existed, leaf, ordered int64
		)
		err := rows.Scan(
			&row.Edge.OutFileID, &row.Edge.InFileID, &row.Edge.InLastModified, &row.Edge.OrderIndex,
			&canBeMissing, &existed,
			&row.Input.ID, &row.Input.Path, &row.Input.VersionID, &row.Input.TypeName, &row.Input.FormatVersion,
			&leaf, &ordered, &row.Input.LastModified, &row.Input.Size, &row.Input.ContentHash, &row.Input.Signature,
		)
		if err != nil {
			return nil, &domain.StoreError{Op: "select graph", Err: err}
		}
		row.Edge.CanBeMissing = canBeMissing != 0
		row.Edge.Existed = existed != 0
		row.Input.IsLeaf = leaf != 0
		row.Input.InputOrderMatters = ordered != 0
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "select graph", Err: err}
	}
	return out, nil
}

// DeleteGraphPairs removes the edges of outFileID whose input id is not in keep.
func (q *queries) DeleteGraphPairs(ctx context.Context, outFileID int64, keep []int64) error {
	query := deleteGraphSQL
	args := make([]any, 0, len(keep)+1)
	args = append(args, outFileID)
	if len(keep) > 0 {
		query += " AND in_file_id NOT IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(keep)), ", ") + ")"
		for _, id := range keep {
			args = append(args, id)
		}
	}
	if _, err := q.ex.ExecContext(ctx, q.d.rebind(query), args...); err != nil {
		return &domain.StoreError{Op: "delete graph pairs", Err: err}
	}
	return nil
}

func scanFile(row *sql.Row) (*domain.FileRecord, error) {
	var (
		rec           domain.FileRecord
		leaf, ordered int64
	)
	err := row.Scan(
		&rec.ID, &rec.Path, &rec.VersionID, &rec.TypeName, &rec.FormatVersion,
		&leaf, &ordered, &rec.LastModified, &rec.Size, &rec.ContentHash, &rec.Signature,
	)
	if err != nil {
		return nil, err
	}
	rec.IsLeaf = leaf != 0
	rec.InputOrderMatters = ordered != 0
	return &rec, nil
}
