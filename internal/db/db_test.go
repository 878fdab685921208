package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/hplussport-catalog/internal/config"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.Database{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "catalog.db"),
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}
	conn, dialect, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, SQLite, dialect)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$3", Postgres.Placeholder(3))
	assert.Equal(t, "?", SQLite.Placeholder(3))
	assert.Equal(t, "?", MySQL.Placeholder(1))
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "pgx", Postgres.DriverName())
	assert.Equal(t, "sqlite", SQLite.DriverName())
	assert.Equal(t, "mysql", MySQL.DriverName())
}

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN(SQLite, "file:x.db")
	require.NoError(t, err)
	assert.Equal(t, "file:x.db?_pragma=foreign_keys(1)", dsn)

	dsn, err = normalizeDSN(SQLite, "file:x.db?cache=shared")
	require.NoError(t, err)
	assert.Equal(t, "file:x.db?cache=shared&_pragma=foreign_keys(1)", dsn)

	dsn, err = normalizeDSN(MySQL, "root:pw@tcp(localhost:3306)/catalog")
	require.NoError(t, err)
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=true")

	_, err = normalizeDSN(MySQL, "not a dsn")
	assert.Error(t, err)
}

func TestEnsureCreated_IsIdempotent(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, EnsureCreated(ctx, conn, SQLite))
	require.NoError(t, EnsureCreated(ctx, conn, SQLite))

	var n int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n))
	assert.Zero(t, n)
}

func TestEnsureCreated_EnforcesCategoryReference(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, EnsureCreated(ctx, conn, SQLite))

	_, err := conn.ExecContext(ctx,
		"INSERT INTO products (name, sku, price, is_available, category_id) VALUES (?, ?, ?, ?, ?)",
		"Orphan", "ORPH", "1.00", true, 999)
	assert.Error(t, err)
}

func TestSeed_OnlyWhenEmpty(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, EnsureCreated(ctx, conn, SQLite))

	seeded, err := Seed(ctx, conn, SQLite)
	require.NoError(t, err)
	assert.True(t, seeded)

	var categories, products int
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&categories))
	require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&products))
	assert.Equal(t, len(sampleCatalog), categories)

	want := 0
	for _, c := range sampleCatalog {
		want += len(c.products)
	}
	assert.Equal(t, want, products)

	seeded, err = Seed(ctx, conn, SQLite)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestInsertReturningID(t *testing.T) {
	conn := openSQLite(t)
	ctx := context.Background()
	require.NoError(t, EnsureCreated(ctx, conn, SQLite))

	first, err := SQLite.InsertReturningID(ctx, conn, "INSERT INTO categories (name) VALUES (?)", "A")
	require.NoError(t, err)
	second, err := SQLite.InsertReturningID(ctx, conn, "INSERT INTO categories (name) VALUES (?)", "B")
	require.NoError(t, err)
	assert.Greater(t, second, first)
}
