package handlers_test_suite

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/internal/events"
	handler "github.com/rogerio-castellano/hplussport-catalog/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	cat := createCategory(t, "Active Wear - Men")

	w := createProduct(r, handler.ProductRequest{
		Name: "Polo Shirt", Sku: "AMPS", Price: decimal.RequireFromString("35.00"), IsAvailable: true, CategoryID: cat.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	created := decodeProduct(t, w)
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if got, want := w.Header().Get("Location"), productPath(created.ID); got != want {
		t.Errorf("expected Location %q, got %q", want, got)
	}

	w = do(r, http.MethodGet, productPath(created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	fetched := decodeProduct(t, w)
	if fetched.Name != "Polo Shirt" || fetched.Sku != "AMPS" || !fetched.IsAvailable || fetched.CategoryID != cat.ID {
		t.Errorf("fetched product differs from created one: %+v", fetched)
	}
	if !fetched.Price.Equal(decimal.NewFromInt(35)) {
		t.Errorf("expected price 35, got %v", fetched.Price)
	}
}

func TestCreateProductHandler_IgnoresBodyID(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := createProduct(r, handler.ProductRequest{ID: 999, Name: "Polo Shirt", Sku: "AMPS"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	if p := decodeProduct(t, w); p.ID == 999 {
		t.Error("expected the body id to be ignored")
	}
}

func TestCreateProductHandler_LocationFollowsRoutePrefix(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := do(r, http.MethodPost, "/Products?api-version=2.0", handler.ProductRequest{Name: "Polo Shirt", Sku: "AMPS"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	p := decodeProduct(t, w)
	if got, want := w.Header().Get("Location"), "/Products/"+strconv.Itoa(p.ID); got != want {
		t.Errorf("expected Location %q, got %q", want, got)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{"Empty name and sku", handler.ProductRequest{}, []string{"name", "sku"}},
		{"Blank name only", handler.ProductRequest{Name: "   ", Sku: "AMPS"}, []string{"name"}},
		{"Empty sku only", handler.ProductRequest{Name: "Polo Shirt"}, []string{"sku"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}

			var resp []handler.ProductValidationError
			if err := decodeJSON(w, &resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			var fields []string
			for _, e := range resp {
				fields = append(fields, e.Field)
			}
			if !reflect.DeepEqual(fields, tt.expectedErrors) {
				t.Errorf("expected errors for %v, got %v", tt.expectedErrors, fields)
			}
		})
	}

	if n := len(decodeProducts(t, do(r, http.MethodGet, "/v1/products", nil))); n != 0 {
		t.Errorf("expected nothing persisted, found %d products", n)
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	for _, body := range []string{`{name: "Invalid" "}`, `{"name":"a","sku":"b","price":"abc"}`, `{"name":"a","sku":"b"}{}`} {
		req := httptest.NewRequest(http.MethodPost, "/v2/products", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400 Bad Request, got %d", body, w.Code)
		}
	}
}

func TestGetProductsV1_ReturnsEverything(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)
	mustCreateProduct(t, r, "Whey Protein", "SWP", "12", false, 1)

	w := do(r, http.MethodGet, "/products?minPrice=20&maxPrice=40&sortBy=name&sortOrder=desc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	got := names(decodeProducts(t, w))
	want := []string{"Polo Shirt", "Whey Protein"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGetProductsV2_NoFiltersReturnsAvailable(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)
	mustCreateProduct(t, r, "Whey Protein", "SWP", "12", false, 1)
	mustCreateProduct(t, r, "Slicker Jacket", "AMSJ", "125", true, 1)

	w := do(r, http.MethodGet, "/v2/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	for _, p := range decodeProducts(t, w) {
		if !p.IsAvailable {
			t.Errorf("unavailable product %q listed", p.Name)
		}
	}
	if got := names(decodeProducts(t, do(r, http.MethodGet, "/v2/products", nil))); len(got) != 2 {
		t.Errorf("expected 2 available products, got %v", got)
	}
}

func TestGetProductsV2_PriceRange(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	for i, price := range []string{"5", "10", "15.50", "20", "20.01", "99"} {
		mustCreateProduct(t, r, "P"+strconv.Itoa(i), "SKU"+strconv.Itoa(i), price, true, 1)
	}

	w := do(r, http.MethodGet, "/v2/products?minPrice=10&maxPrice=20", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	ten, twenty := decimal.NewFromInt(10), decimal.NewFromInt(20)
	ps := decodeProducts(t, w)
	if len(ps) != 3 {
		t.Fatalf("expected 3 products in range, got %d", len(ps))
	}
	for _, p := range ps {
		if p.Price.LessThan(ten) || p.Price.GreaterThan(twenty) {
			t.Errorf("price %v outside [10, 20]", p.Price)
		}
	}

	w = do(r, http.MethodGet, "/v2/products?minPrice=10", nil)
	if n := len(decodeProducts(t, w)); n != 6 {
		t.Errorf("expected a single bound to be ignored, got %d products", n)
	}
}

func TestGetProductsV2_SkuAndName(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	mustCreateProduct(t, r, "V-Neck Pullover", "AMVNP", "65", true, 1)
	mustCreateProduct(t, r, "V-Neck Sweater", "AMVNS", "65", true, 1)
	mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)

	if got := names(decodeProducts(t, do(r, http.MethodGet, "/v2/products?sku=AMVNS", nil))); !reflect.DeepEqual(got, []string{"V-Neck Sweater"}) {
		t.Errorf("sku filter: got %v", got)
	}
	if got := names(decodeProducts(t, do(r, http.MethodGet, "/v2/products?name=v-neck", nil))); len(got) != 2 {
		t.Errorf("name filter: got %v", got)
	}
	if got := names(decodeProducts(t, do(r, http.MethodGet, "/v2/products?name=%25", nil))); len(got) != 0 {
		t.Errorf("expected %% to match literally, got %v", got)
	}
}

func TestGetProductsV2_Sorting(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	for _, n := range []string{"Polo Shirt", "Bamboo Thermal Ski Coat", "Slicker Jacket", "Grunge Skater Jeans"} {
		mustCreateProduct(t, r, n, strings.ToUpper(n[:3]), "10", true, 1)
	}

	got := names(decodeProducts(t, do(r, http.MethodGet, "/v2/products?sortBy=name", nil)))
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("expected non-decreasing names, got %v", got)
		}
	}

	got = names(decodeProducts(t, do(r, http.MethodGet, "/v2/products?sortBy=Name&sortOrder=DESC", nil)))
	want := []string{"Slicker Jacket", "Polo Shirt", "Grunge Skater Jeans", "Bamboo Thermal Ski Coat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	w := do(r, http.MethodGet, "/v2/products?sortBy=weight&sortOrder=desc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected unknown sort key to be ignored, got %d", w.Code)
	}
	got = names(decodeProducts(t, w))
	want = []string{"Polo Shirt", "Bamboo Thermal Ski Coat", "Slicker Jacket", "Grunge Skater Jeans"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected insertion order %v, got %v", want, got)
	}
}

func TestGetProductsV2_Pagination(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	for i := 1; i <= 12; i++ {
		mustCreateProduct(t, r, "P"+pad(i), "SKU"+pad(i), "10", true, 1)
	}

	got := names(decodeProducts(t, do(r, http.MethodGet, "/v2/products?page=2&size=5", nil)))
	want := []string{"P06", "P07", "P08", "P09", "P10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	w := do(r, http.MethodGet, "/v2/products?page=9&size=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK past the end, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected [], got %s", body)
	}

	if n := len(decodeProducts(t, do(r, http.MethodGet, "/v2/products?page=0&size=3", nil))); n != 3 {
		t.Errorf("expected page 0 to skip nothing, got %d items", n)
	}
	if n := len(decodeProducts(t, do(r, http.MethodGet, "/v2/products?size=-1", nil))); n != 0 {
		t.Errorf("expected negative size to take nothing, got %d items", n)
	}
}

func TestGetProductsV2_InvalidParameters(t *testing.T) {
	r := newRouter()

	for _, q := range []string{"minPrice=cheap", "maxPrice=10x", "page=two", "size=big"} {
		w := do(r, http.MethodGet, "/v2/products?"+q, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status 400, got %d", q, w.Code)
		}
	}
}

func TestGetProductByIDHandler_NotFoundAndInvalid(t *testing.T) {
	r := newRouter()

	if w := do(r, http.MethodGet, "/products/424242", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/products/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestUpdateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	p := mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)

	w := do(r, http.MethodPut, productPath(p.ID), handler.ProductRequest{
		ID: p.ID, Name: "Polo Shirt Slim", Sku: "AMPSS", Price: decimal.RequireFromString("39.90"), IsAvailable: false, CategoryID: 2,
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	updated := decodeProduct(t, do(r, http.MethodGet, productPath(p.ID), nil))
	if updated.Name != "Polo Shirt Slim" || updated.Sku != "AMPSS" || updated.IsAvailable || updated.CategoryID != 2 {
		t.Errorf("expected every field overwritten, got %+v", updated)
	}
	if !updated.Price.Equal(decimal.RequireFromString("39.9")) {
		t.Errorf("expected price 39.90, got %v", updated.Price)
	}
}

func TestUpdateProductHandler_MismatchedIDs(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	p := mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)

	w := do(r, http.MethodPut, productPath(p.ID), handler.ProductRequest{ID: p.ID + 1, Name: "Changed", Sku: "CHG"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	if got := decodeProduct(t, do(r, http.MethodGet, productPath(p.ID), nil)); got.Name != "Polo Shirt" {
		t.Errorf("expected nothing persisted, got name %q", got.Name)
	}
}

func TestUpdateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	p := mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)

	if w := do(r, http.MethodPut, "/v2/products/x", handler.ProductRequest{}); w.Code != http.StatusBadRequest {
		t.Errorf("invalid id: expected 400, got %d", w.Code)
	}
	if w := do(r, http.MethodPut, productPath(p.ID), handler.ProductRequest{ID: p.ID}); w.Code != http.StatusBadRequest {
		t.Errorf("blank fields: expected 400, got %d", w.Code)
	}
}

func TestUpdateProductHandler_Missing(t *testing.T) {
	r := newRouter()

	w := do(r, http.MethodPut, productPath(5150), handler.ProductRequest{ID: 5150, Name: "Ghost", Sku: "GHST"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestUpdateProductHandler_ConflictOnExistingProductIsSwallowed(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	p := mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)

	useStore(t, conflictingStore{MemoryStore: store})

	w := do(r, http.MethodPut, productPath(p.ID), handler.ProductRequest{ID: p.ID, Name: "Changed", Sku: "CHG"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := decodeProduct(t, do(r, http.MethodGet, productPath(p.ID), nil)); got.Name != "Polo Shirt" {
		t.Errorf("expected the conflicting update to be dropped, got name %q", got.Name)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	p := mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)
	mustCreateProduct(t, r, "Slicker Jacket", "AMSJ", "125", true, 1)

	w := do(r, http.MethodDelete, "/v2/products?id=424242", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if n := len(decodeProducts(t, do(r, http.MethodGet, "/v1/products", nil))); n != 2 {
		t.Fatalf("expected table unchanged, got %d products", n)
	}

	w = do(r, http.MethodDelete, "/v2/products?id="+strconv.Itoa(p.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if deleted := decodeProduct(t, w); deleted.ID != p.ID || deleted.Name != "Polo Shirt" {
		t.Errorf("expected the deleted product back, got %+v", deleted)
	}
	if w := do(r, http.MethodGet, productPath(p.ID), nil); w.Code != http.StatusNotFound {
		t.Errorf("expected deleted product to be gone, got %d", w.Code)
	}

	for _, q := range []string{"", "?id=", "?id=abc"} {
		if w := do(r, http.MethodDelete, "/v2/products"+q, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%q: expected 400, got %d", q, w.Code)
		}
	}
}

func TestWritesPublishEvents(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	p := mustCreateProduct(t, r, "Polo Shirt", "AMPS", "35", true, 1)
	do(r, http.MethodPut, productPath(p.ID), handler.ProductRequest{ID: p.ID, Name: "Polo", Sku: "AMPS"})
	do(r, http.MethodDelete, "/v2/products?id="+strconv.Itoa(p.ID), nil)

	var types []events.Type
	for _, ev := range publisher.recorded() {
		if ev.ProductID != p.ID {
			t.Errorf("expected event for product %d, got %d", p.ID, ev.ProductID)
		}
		types = append(types, ev.Type)
	}
	want := []events.Type{events.ProductCreated, events.ProductUpdated, events.ProductDeleted}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("expected events %v, got %v", want, types)
	}
}

func TestPublishFailureDoesNotChangeResponse(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()
	publisher.mu.Lock()
	publisher.fail = true
	publisher.mu.Unlock()

	w := createProduct(r, handler.ProductRequest{Name: "Polo Shirt", Sku: "AMPS"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 despite publish failure, got %d", w.Code)
	}
}

func pad(i int) string {
	if i < 10 {
		return "0" + strconv.Itoa(i)
	}
	return strconv.Itoa(i)
}
