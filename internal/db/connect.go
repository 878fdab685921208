package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/rogerio-castellano/hplussport-catalog/internal/config"
)

// Connect opens a pool for the configured driver and verifies it with a ping.
func Connect(ctx context.Context, cfg config.Database) (*sql.DB, Dialect, error) {
	dialect := Dialect(cfg.Driver)

	dsn, err := normalizeDSN(dialect, cfg.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("invalid %s dsn: %w", dialect, err)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if dialect == SQLite && isSQLiteMemory(cfg.DSN) {
		// every connection would get its own private in-memory database
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, dialect, nil
}

func normalizeDSN(d Dialect, dsn string) (string, error) {
	switch d {
	case SQLite:
		if strings.Contains(dsn, "foreign_keys") {
			return dsn, nil
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "_pragma=foreign_keys(1)", nil
	case MySQL:
		mc, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", err
		}
		// RowsAffected must count matched rows, not changed ones
		mc.ClientFoundRows = true
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	}
	return dsn, nil
}

func isSQLiteMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
