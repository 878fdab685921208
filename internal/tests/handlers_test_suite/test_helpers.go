package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/internal/events"
	handler "github.com/rogerio-castellano/hplussport-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/hplussport-catalog/internal/http/router"
	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
)

var (
	store     *repo.MemoryStore
	publisher *recordingPublisher
)

func init() {
	store = repo.NewMemoryStore()
	handler.SetStore(store)

	publisher = &recordingPublisher{}
	handler.SetPublisher(publisher)
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{})
}

func clearAll() {
	store.Clear()
	publisher.reset()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ProductEvent
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.ProductEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("sink unavailable")
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) recorded() []events.ProductEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.ProductEvent(nil), p.events...)
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.fail = false
}

// conflictingStore reports every update as a concurrency conflict.
type conflictingStore struct {
	*repo.MemoryStore
}

func (s conflictingStore) Acquire(ctx context.Context) (repo.Session, error) {
	sess, err := s.MemoryStore.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conflictingSession{Session: sess}, nil
}

type conflictingSession struct {
	repo.Session
}

func (s conflictingSession) Products() repo.ProductRepository {
	return conflictingProducts{ProductRepository: s.Session.Products()}
}

type conflictingProducts struct {
	repo.ProductRepository
}

func (conflictingProducts) Update(context.Context, models.Product) error {
	return repo.ErrConcurrencyConflict
}

func useStore(t *testing.T, s repo.Store) {
	handler.SetStore(s)
	t.Cleanup(func() { handler.SetStore(store) })
}

func do(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	sess, err := store.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer sess.Release()

	c, err := sess.Categories().Create(context.Background(), models.Category{Name: name})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return do(r, http.MethodPost, "/v2/products", p)
}

func mustCreateProduct(t *testing.T, r http.Handler, name, sku, price string, available bool, categoryID int) models.Product {
	t.Helper()
	w := createProduct(r, handler.ProductRequest{
		Name:        name,
		Sku:         sku,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
		CategoryID:  categoryID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	return decodeProduct(t, w)
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) models.Product {
	t.Helper()
	var p models.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	return p
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []models.Product {
	t.Helper()
	var ps []models.Product
	if err := json.NewDecoder(w.Body).Decode(&ps); err != nil {
		t.Fatalf("error decoding products: %v", err)
	}
	return ps
}

func productPath(id int) string {
	return fmt.Sprintf("/v2/products/%d", id)
}

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func decodeJSON(w *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(w.Body).Decode(v)
}
