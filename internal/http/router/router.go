package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/hplussport-catalog/docs"
	"github.com/rogerio-castellano/hplussport-catalog/internal/http/handlers"
	mw "github.com/rogerio-castellano/hplussport-catalog/internal/http/middleware"
	"github.com/rogerio-castellano/hplussport-catalog/pkg/logger"
)

type Options struct {
	Logger  logger.Logger
	Swagger bool
}

// NewRouter wires the catalog routes. Unprefixed product routes negotiate
// the API version; /v1 and /v2 routes have it fixed by their prefix.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(mw.CaseInsensitivePaths)

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	r.Route("/products", func(r chi.Router) {
		r.Use(mw.APIVersion)
		r.Get("/", listProducts)
		r.Post("/", createProduct)
		r.Delete("/", deleteProduct)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Put("/{id}", updateProduct)
	})

	r.Route("/v1/products", func(r chi.Router) {
		r.Use(mw.Pin(mw.V1))
		r.Get("/", handlers.GetProductsV1Handler)
		r.Post("/", unsupportedInV1)
		r.Delete("/", unsupportedInV1)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Put("/{id}", unsupportedInV1)
	})

	r.Route("/v2/products", func(r chi.Router) {
		r.Use(mw.Pin(mw.V2))
		r.Get("/", handlers.GetProductsHandler)
		r.Post("/", handlers.CreateProductHandler)
		r.Delete("/", handlers.DeleteProductHandler)
		r.Get("/{id}", handlers.GetProductByIDHandler)
		r.Put("/{id}", handlers.UpdateProductHandler)
	})

	categories := func(r chi.Router) {
		r.Get("/", handlers.GetCategoriesHandler)
		r.Get("/{id}", handlers.GetCategoryByIDHandler)
	}
	r.Route("/categories", categories)
	r.Route("/v2/categories", categories)

	return r
}

// listProducts godoc
// @Summary List products for the negotiated API version
// @Description 1.0 returns every product. 2.0 returns available products and accepts the filters of /v2/products.
// @Tags products
// @Produce json
// @Param api-version query string false "API version, takes precedence over the header" Enums(1.0, 2.0) default(1.0)
// @Param X-API-Version header string false "API version" Enums(1.0, 2.0)
// @Success 200 {array} models.Product
// @Failure 400 {string} string "Unsupported API version or invalid query parameter"
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func listProducts(w http.ResponseWriter, r *http.Request) {
	byVersion(handlers.GetProductsV1Handler, handlers.GetProductsHandler)(w, r)
}

// createProduct godoc
// @Summary Create a product (API version 2.0)
// @Tags products
// @Accept json
// @Produce json
// @Param api-version query string false "API version, takes precedence over the header" Enums(1.0, 2.0) default(1.0)
// @Param X-API-Version header string false "API version" Enums(1.0, 2.0)
// @Param product body handlers.ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Header 201 {string} Location "URL of the created product"
// @Failure 400 {string} string "Unsupported in API version 1.0, or invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func createProduct(w http.ResponseWriter, r *http.Request) {
	byVersion(unsupportedInV1, handlers.CreateProductHandler)(w, r)
}

// deleteProduct godoc
// @Summary Delete a product (API version 2.0)
// @Tags products
// @Produce json
// @Param api-version query string false "API version, takes precedence over the header" Enums(1.0, 2.0) default(1.0)
// @Param X-API-Version header string false "API version" Enums(1.0, 2.0)
// @Param id query int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {string} string "Unsupported in API version 1.0, or invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products [delete]
func deleteProduct(w http.ResponseWriter, r *http.Request) {
	byVersion(unsupportedInV1, handlers.DeleteProductHandler)(w, r)
}

// updateProduct godoc
// @Summary Replace a product (API version 2.0)
// @Tags products
// @Accept json
// @Param api-version query string false "API version, takes precedence over the header" Enums(1.0, 2.0) default(1.0)
// @Param X-API-Version header string false "API version" Enums(1.0, 2.0)
// @Param id path int true "Product ID"
// @Param product body handlers.ProductRequest true "Full product"
// @Success 204
// @Failure 400 {string} string "Unsupported in API version 1.0, invalid input or id mismatch"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func updateProduct(w http.ResponseWriter, r *http.Request) {
	byVersion(unsupportedInV1, handlers.UpdateProductHandler)(w, r)
}

func byVersion(v1, v2 http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mw.Version(r) == mw.V2 {
			v2(w, r)
			return
		}
		v1(w, r)
	}
}

func unsupportedInV1(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "operation not supported in api version "+mw.V1, http.StatusBadRequest)
}
