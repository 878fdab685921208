package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jimlawless/whereami"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/query"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

var productColumns = []string{"id", "name", "sku", "price", "is_available", "category_id"}

type SQLProductRepository struct {
	conn  *sql.Conn
	store *SQLStore
}

func (r *SQLProductRepository) ph(n int) string {
	return r.store.dialect.Placeholder(n)
}

func (r *SQLProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	stmt, args := query.From("products").Select(productColumns...).OrderBy("id", query.Asc).Build(r.ph)
	return r.query(ctx, stmt, args...)
}

func (r *SQLProductRepository) GetByID(ctx context.Context, id int) (models.Product, error) {
	stmt, args := query.From("products").Select(productColumns...).Where(query.Eq("id", id)).Build(r.ph)
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	var p models.Product
	err := r.conn.QueryRowContext(ctx, stmt, args...).Scan(&p.ID, &p.Name, &p.Sku, &p.Price, &p.IsAvailable, &p.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, e.Wrap(whereami.WhereAmI(), err)
	}
	return p, nil
}

// List runs the query in the database.
func (r *SQLProductRepository) List(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	stmt, args := q.builder().Build(r.ph)
	return r.query(ctx, stmt, args...)
}

func (r *SQLProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	stmt := "INSERT INTO products (name, sku, price, is_available, category_id) VALUES (" + r.placeholders(5) + ")"
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	id, err := r.store.dialect.InsertReturningID(ctx, r.conn, stmt, p.Name, p.Sku, p.Price, p.IsAvailable, p.CategoryID)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = id
	return p, nil
}

func (r *SQLProductRepository) Update(ctx context.Context, p models.Product) error {
	stmt := "UPDATE products SET name = " + r.ph(1) + ", sku = " + r.ph(2) + ", price = " + r.ph(3) +
		", is_available = " + r.ph(4) + ", category_id = " + r.ph(5) + " WHERE id = " + r.ph(6)
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.conn.ExecContext(ctx, stmt, p.Name, p.Sku, p.Price, p.IsAvailable, p.CategoryID, p.ID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if rowsAffected == 0 {
		return ErrConcurrencyConflict
	}
	return nil
}

func (r *SQLProductRepository) Delete(ctx context.Context, id int) error {
	stmt := "DELETE FROM products WHERE id = " + r.ph(1)
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	res, err := r.conn.ExecContext(ctx, stmt, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *SQLProductRepository) placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = r.ph(i + 1)
	}
	return strings.Join(parts, ", ")
}

func (r *SQLProductRepository) query(ctx context.Context, stmt string, args ...any) ([]models.Product, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	rows, err := r.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Sku, &p.Price, &p.IsAvailable, &p.CategoryID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return products, nil
}
