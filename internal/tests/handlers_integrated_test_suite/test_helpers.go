package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/internal/config"
	"github.com/rogerio-castellano/hplussport-catalog/internal/db"
	handler "github.com/rogerio-castellano/hplussport-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/hplussport-catalog/internal/http/router"
	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
)

var (
	database   *sql.DB
	store      *repo.SQLStore
	categoryID int
)

// setupStore honours CATALOG_DATABASE_DRIVER and CATALOG_DATABASE_DSN so the
// suite can run against postgres or mysql; it defaults to a sqlite file.
func setupStore(path string) {
	cfg := config.Database{
		Driver:       "sqlite",
		DSN:          "file:" + path,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		QueryTimeout: 3 * time.Second,
	}
	if driver := os.Getenv("CATALOG_DATABASE_DRIVER"); driver != "" {
		cfg.Driver = driver
		cfg.DSN = os.Getenv("CATALOG_DATABASE_DSN")
	}

	var (
		dialect db.Dialect
		err     error
	)
	database, dialect, err = db.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}

	store = repo.NewSQLStore(database, dialect, cfg.QueryTimeout)
	if err := store.EnsureCreated(context.Background()); err != nil {
		log.Fatal("could not create schema:", err)
	}
	handler.SetStore(store)

	sess, err := store.Acquire(context.Background())
	if err != nil {
		log.Fatal("could not acquire session:", err)
	}
	defer sess.Release()
	c, err := sess.Categories().Create(context.Background(), models.Category{Name: "Active Wear - Men"})
	if err != nil {
		log.Fatal("could not create category:", err)
	}
	categoryID = c.ID
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{})
}

func clearAllProducts() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := database.ExecContext(ctx, "DELETE FROM products")
	if err != nil {
		fmt.Println(fmt.Errorf("failed to delete products: %w", err))
	}
}

func countProducts(t *testing.T) int {
	t.Helper()
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustCreateProduct(t *testing.T, r http.Handler, name, sku, price string, available bool) models.Product {
	t.Helper()
	w := do(r, http.MethodPost, "/v2/products", handler.ProductRequest{
		Name:        name,
		Sku:         sku,
		Price:       decimal.RequireFromString(price),
		IsAvailable: available,
		CategoryID:  categoryID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
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

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
