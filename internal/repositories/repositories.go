package repositories

import "database/sql"

// DBTX is the subset of [sql.DB] and [sql.Tx] the repositories use. The
// loader passes a transaction so each album commits as one unit; tests and
// one-off tools pass the connection directly.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// trackInsertChunk bounds multi-row track inserts. SQLite defaults to 999
// bind variables per statement; 6 columns per row keeps 150 rows under it.
const trackInsertChunk = 150
