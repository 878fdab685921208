package repo

import (
	"context"
	"slices"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	store *MemoryStore
}

// GetAll retrieves all products in id order.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return slices.Clone(r.store.products), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// List evaluates the query over the stored products.
func (r *InMemoryProductRepository) List(_ context.Context, q ProductQuery) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return q.Apply(r.store.products), nil
}

// Create adds a new product and assigns its ID.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	product.ID = r.store.nextProductID
	r.store.nextProductID++
	r.store.products = append(r.store.products, product)
	return product, nil
}

// Update overwrites the product with the same ID.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.products {
		if p.ID == product.ID {
			r.store.products[i] = product
			return nil
		}
	}
	return ErrConcurrencyConflict
}

// Delete removes a product by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.products {
		if p.ID == id {
			r.store.products = slices.Delete(r.store.products, i, i+1)
			return nil
		}
	}
	return ErrProductNotFound
}
