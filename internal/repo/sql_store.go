package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jimlawless/whereami"

	"github.com/rogerio-castellano/hplussport-catalog/internal/db"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

// SQLStore is a Store over a database/sql pool.
type SQLStore struct {
	pool         *sql.DB
	dialect      db.Dialect
	queryTimeout time.Duration
}

func NewSQLStore(pool *sql.DB, dialect db.Dialect, queryTimeout time.Duration) *SQLStore {
	return &SQLStore{pool: pool, dialect: dialect, queryTimeout: queryTimeout}
}

// Acquire checks a dedicated connection out of the pool. The connection goes
// back to the pool on Release.
func (s *SQLStore) Acquire(ctx context.Context) (Session, error) {
	conn, err := s.pool.Conn(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return &sqlSession{conn: conn, store: s}, nil
}

// EnsureCreated creates the catalog schema when it is missing.
func (s *SQLStore) EnsureCreated(ctx context.Context) error {
	return db.EnsureCreated(ctx, s.pool, s.dialect)
}

// Seed inserts the sample catalog into an empty database.
func (s *SQLStore) Seed(ctx context.Context) (bool, error) {
	return db.Seed(ctx, s.pool, s.dialect)
}

func (s *SQLStore) Close() error {
	return s.pool.Close()
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

type sqlSession struct {
	conn  *sql.Conn
	store *SQLStore
}

func (s *sqlSession) Products() ProductRepository {
	return &SQLProductRepository{conn: s.conn, store: s.store}
}

func (s *sqlSession) Categories() CategoryRepository {
	return &SQLCategoryRepository{conn: s.conn, store: s.store}
}

func (s *sqlSession) Release() error {
	return s.conn.Close()
}
