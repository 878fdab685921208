package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jimlawless/whereami"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/query"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/e"
)

type SQLCategoryRepository struct {
	conn  *sql.Conn
	store *SQLStore
}

func (r *SQLCategoryRepository) ph(n int) string {
	return r.store.dialect.Placeholder(n)
}

func (r *SQLCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	stmt, _ := query.From("categories").Select("id", "name").OrderBy("id", query.Asc).Build(r.ph)
	rows, err := r.conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	categories := []models.Category{}
	index := map[int]int{}
	for rows.Next() {
		c := models.Category{ProductIDs: []int{}}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	rows.Close()

	stmt, _ = query.From("products").Select("id", "category_id").OrderBy("id", query.Asc).Build(r.ph)
	prows, err := r.conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer prows.Close()

	for prows.Next() {
		var productID, categoryID int
		if err := prows.Scan(&productID, &categoryID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if i, ok := index[categoryID]; ok {
			categories[i].ProductIDs = append(categories[i].ProductIDs, productID)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	return categories, nil
}

func (r *SQLCategoryRepository) GetByID(ctx context.Context, id int) (models.Category, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	stmt, args := query.From("categories").Select("id", "name").Where(query.Eq("id", id)).Build(r.ph)
	c := models.Category{ProductIDs: []int{}}
	err := r.conn.QueryRowContext(ctx, stmt, args...).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, e.Wrap(whereami.WhereAmI(), err)
	}

	stmt, args = query.From("products").Select("id").Where(query.Eq("category_id", id)).OrderBy("id", query.Asc).Build(r.ph)
	rows, err := r.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return models.Category{}, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int
		if err := rows.Scan(&productID); err != nil {
			return models.Category{}, e.Wrap(whereami.WhereAmI(), err)
		}
		c.ProductIDs = append(c.ProductIDs, productID)
	}
	if err := rows.Err(); err != nil {
		return models.Category{}, e.Wrap(whereami.WhereAmI(), err)
	}
	return c, nil
}

// Create inserts the category name. ProductIDs are derived from products and
// ignored here.
func (r *SQLCategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	ctx, cancel := r.store.withTimeout(ctx)
	defer cancel()

	id, err := r.store.dialect.InsertReturningID(ctx, r.conn, "INSERT INTO categories (name) VALUES ("+r.ph(1)+")", c.Name)
	if err != nil {
		return models.Category{}, err
	}
	return models.Category{ID: id, Name: c.Name, ProductIDs: []int{}}, nil
}
