package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type dialect uint8

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

const pgUniqueViolation = "23505"

// dialectFor picks the SQL dialect from the DSN. Anything that is not a PostgreSQL URL is a SQLite path.
func dialectFor(dsn string) dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dialectPostgres
	}
	return dialectSQLite
}

func (d dialect) driverName() string {
	if d == dialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d dialect) String() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// rebind rewrites ? placeholders to the $n form used by PostgreSQL.
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) schema() string {
	id := "INTEGER PRIMARY KEY AUTOINCREMENT"
	ref := "INTEGER"
	if d == dialectPostgres {
		id = "BIGSERIAL PRIMARY KEY"
		ref = "BIGINT"
	}
	return `
CREATE TABLE IF NOT EXISTS version (
	id ` + id + `,
	spec_name TEXT NOT NULL,
	version TEXT NOT NULL,
	UNIQUE (spec_name, version)
);
CREATE TABLE IF NOT EXISTS file (
	id ` + id + `,
	path TEXT NOT NULL UNIQUE,
	version_id ` + ref + ` NOT NULL REFERENCES version(id),
	is_leaf INTEGER NOT NULL DEFAULT 0,
	input_order_matters INTEGER NOT NULL DEFAULT 0,
	last_modified BIGINT NOT NULL DEFAULT 0,
	size BIGINT NOT NULL DEFAULT 0,
	content_hash TEXT NOT NULL DEFAULT '',
	signature TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS graph (
	out_file_id ` + ref + ` NOT NULL REFERENCES file(id) ON DELETE CASCADE,
	in_file_id ` + ref + ` NOT NULL REFERENCES file(id) ON DELETE CASCADE,
	in_last_modified BIGINT NOT NULL DEFAULT 0,
	in_file_order_index INTEGER NOT NULL DEFAULT 0,
	in_can_be_missing INTEGER NOT NULL DEFAULT 0,
	in_file_existed INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (out_file_id, in_file_id)
);
CREATE INDEX IF NOT EXISTS graph_in_file_idx ON graph (in_file_id);
`
}

// isUniqueViolation reports whether err is a unique constraint failure from either driver.
func isUniqueViolation(err error) bool {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
