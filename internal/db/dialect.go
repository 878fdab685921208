package db

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jimlawless/whereami"

	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

// Dialect captures the SQL differences between the supported drivers.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
)

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	}
	return string(d)
}

// Placeholder returns the n-th (1-based) bind parameter marker.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (d Dialect) autoIncrementPK() string {
	switch d {
	case SQLite:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	case MySQL:
		return "INT AUTO_INCREMENT PRIMARY KEY"
	default:
		return "SERIAL PRIMARY KEY"
	}
}

// Execer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InsertReturningID runs an INSERT and reports the generated id column.
// Postgres uses RETURNING, the others the driver's LastInsertId.
func (d Dialect) InsertReturningID(ctx context.Context, ex Execer, query string, args ...any) (int, error) {
	if d == Postgres {
		var id int
		if err := ex.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
		return id, nil
	}

	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}
	return int(id), nil
}
