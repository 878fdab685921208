package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
)

// MemoryStore is an in-memory Store used by tests and local runs.
// Category references are not enforced.
type MemoryStore struct {
	mu             sync.RWMutex
	products       []models.Product
	categories     []models.Category
	nextProductID  int
	nextCategoryID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:       []models.Product{},
		categories:     []models.Category{},
		nextProductID:  1,
		nextCategoryID: 1,
	}
}

func (s *MemoryStore) Acquire(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return memorySession{store: s}, nil
}

// Clear removes all products and categories. Ids keep counting up.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = []models.Product{}
	s.categories = []models.Category{}
}

type memorySession struct {
	store *MemoryStore
}

func (s memorySession) Products() ProductRepository {
	return &InMemoryProductRepository{store: s.store}
}

func (s memorySession) Categories() CategoryRepository {
	return &InMemoryCategoryRepository{store: s.store}
}

func (memorySession) Release() error {
	return nil
}
