package repo

import (
	"context"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
)

type InMemoryCategoryRepository struct {
	store *MemoryStore
}

func (r *InMemoryCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		categories = append(categories, r.withProductIDs(c))
	}
	return categories, nil
}

func (r *InMemoryCategoryRepository) GetByID(_ context.Context, id int) (models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.categories {
		if c.ID == id {
			return r.withProductIDs(c), nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Create(_ context.Context, c models.Category) (models.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := models.Category{ID: r.store.nextCategoryID, Name: c.Name}
	r.store.nextCategoryID++
	r.store.categories = append(r.store.categories, created)
	return r.withProductIDs(created), nil
}

// withProductIDs expects the store lock to be held.
func (r *InMemoryCategoryRepository) withProductIDs(c models.Category) models.Category {
	c.ProductIDs = []int{}
	for _, p := range r.store.products {
		if p.CategoryID == c.ID {
			c.ProductIDs = append(c.ProductIDs, p.ID)
		}
	}
	return c
}
