package repo

import (
	"context"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	List(ctx context.Context, q ProductQuery) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (models.Product, error)
	// Update overwrites every column of the product with the same id.
	// It returns ErrConcurrencyConflict when no row was affected.
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id int) error
}

// CategoryRepository defines the interface for category data operations.
// Categories are returned with the ids of the products that reference them.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (models.Category, error)
	Create(ctx context.Context, category models.Category) (models.Category, error)
}

// Store hands out sessions. A session is the unit of work of one request.
type Store interface {
	Acquire(ctx context.Context) (Session, error)
}

// Session gives access to the repositories over one database handle.
// Callers must Release it when done.
type Session interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Release() error
}
