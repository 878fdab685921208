package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
)

// parseProductQueryParameters reads the listing parameters. Absent values
// keep their defaults; values of the wrong type are an error.
func parseProductQueryParameters(r *http.Request) (models.ProductQueryParameters, error) {
	q := r.URL.Query()
	params := models.NewProductQueryParameters()
	params.Sku = q.Get("sku")
	params.Name = q.Get("name")
	params.SortBy = q.Get("sortBy")
	params.SortOrder = q.Get("sortOrder")

	var err error
	if params.MinPrice, err = decimalParam(q.Get("minPrice"), "minPrice"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = decimalParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		return params, err
	}
	if v := q.Get("page"); v != "" {
		if params.Page, err = strconv.Atoi(v); err != nil {
			return params, fmt.Errorf("invalid value for page: %q", v)
		}
	}
	if v := q.Get("size"); v != "" {
		if params.Size, err = strconv.Atoi(v); err != nil {
			return params, fmt.Errorf("invalid value for size: %q", v)
		}
	}
	return params, nil
}

func decimalParam(v, name string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q", name, v)
	}
	return &d, nil
}

// buildProductQuery composes the listing: available products only, the
// price range when both bounds are given, exact sku, name substring, an
// optional known sort key and finally the requested page.
func buildProductQuery(p models.ProductQueryParameters) repo.ProductQuery {
	q := repo.Products().Available(true)

	if p.MinPrice != nil && p.MaxPrice != nil {
		q = q.PriceBetween(*p.MinPrice, *p.MaxPrice)
	}
	if p.Sku != "" {
		q = q.WithSKU(p.Sku)
	}
	if p.Name != "" {
		q = q.NameContains(p.Name)
	}
	if p.SortBy != "" {
		if key, ok := repo.ParseSortKey(p.SortBy); ok {
			q = q.OrderBy(key, repo.ParseDirection(p.SortOrder))
		}
	}

	return q.Skip(p.Offset()).Take(p.Size)
}
