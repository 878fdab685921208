package repo

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
	"github.com/rogerio-castellano/hplussport-catalog/internal/query"
)

// SortKey is a product property listings can be ordered by.
type SortKey int

const (
	SortByID SortKey = iota
	SortByName
	SortBySku
	SortByPrice
	SortByAvailability
	SortByCategory
)

var sortKeyNames = map[string]SortKey{
	"id":          SortByID,
	"name":        SortByName,
	"sku":         SortBySku,
	"price":       SortByPrice,
	"isavailable": SortByAvailability,
	"categoryid":  SortByCategory,
}

// ParseSortKey looks up a sort key by its JSON property name, ignoring case.
func ParseSortKey(name string) (SortKey, bool) {
	k, ok := sortKeyNames[strings.ToLower(name)]
	return k, ok
}

// Column is the products column the key sorts on.
func (k SortKey) Column() string {
	switch k {
	case SortByName:
		return "name"
	case SortBySku:
		return "sku"
	case SortByPrice:
		return "price"
	case SortByAvailability:
		return "is_available"
	case SortByCategory:
		return "category_id"
	default:
		return "id"
	}
}

// compare orders strings bytewise. It matches SQL stores only under a binary
// collation (the SQLite default); postgres and mysql sort names by locale.
func (k SortKey) compare(a, b models.Product) int {
	switch k {
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	case SortBySku:
		return strings.Compare(a.Sku, b.Sku)
	case SortByPrice:
		return a.Price.Cmp(b.Price)
	case SortByAvailability:
		return cmpBool(a.IsAvailable, b.IsAvailable)
	case SortByCategory:
		return cmp.Compare(a.CategoryID, b.CategoryID)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection treats "desc" in any case as descending and anything else,
// the empty string included, as ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Descending
	}
	return Ascending
}

type ordering struct {
	key       SortKey
	direction Direction
}

// ProductQuery describes a product listing: filters, ordering and paging.
// It is a value; each method returns a modified copy and nothing runs until
// a repository evaluates it.
type ProductQuery struct {
	available    *bool
	minPrice     *decimal.Decimal
	maxPrice     *decimal.Decimal
	sku          string
	nameContains string
	orders       []ordering
	skip         int
	take         int
	hasTake      bool
}

// Products starts an unfiltered query over all products.
func Products() ProductQuery {
	return ProductQuery{}
}

func (q ProductQuery) Available(available bool) ProductQuery {
	q.available = &available
	return q
}

// PriceBetween keeps products with min <= price <= max.
func (q ProductQuery) PriceBetween(min, max decimal.Decimal) ProductQuery {
	q.minPrice = &min
	q.maxPrice = &max
	return q
}

func (q ProductQuery) WithSKU(sku string) ProductQuery {
	q.sku = sku
	return q
}

// NameContains keeps products whose name contains s, ignoring case.
func (q ProductQuery) NameContains(s string) ProductQuery {
	q.nameContains = s
	return q
}

// OrderBy adds a sort key after any previously added ones.
func (q ProductQuery) OrderBy(key SortKey, direction Direction) ProductQuery {
	q.orders = append(slices.Clip(q.orders), ordering{key: key, direction: direction})
	return q
}

// Skip drops the first n results. Values below zero skip nothing.
func (q ProductQuery) Skip(n int) ProductQuery {
	q.skip = max(n, 0)
	return q
}

// Take limits the result to n items. Values below zero take nothing.
func (q ProductQuery) Take(n int) ProductQuery {
	q.take = max(n, 0)
	q.hasTake = true
	return q
}

// Matches reports whether p passes every filter of the query.
func (q ProductQuery) Matches(p models.Product) bool {
	if q.available != nil && p.IsAvailable != *q.available {
		return false
	}
	if q.minPrice != nil && p.Price.LessThan(*q.minPrice) {
		return false
	}
	if q.maxPrice != nil && p.Price.GreaterThan(*q.maxPrice) {
		return false
	}
	if q.sku != "" && p.Sku != q.sku {
		return false
	}
	if q.nameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.nameContains)) {
		return false
	}
	return true
}

// Apply evaluates the query against products held in id order.
func (q ProductQuery) Apply(products []models.Product) []models.Product {
	filtered := []models.Product{}
	for _, p := range products {
		if q.Matches(p) {
			filtered = append(filtered, p)
		}
	}

	if len(q.orders) > 0 {
		slices.SortStableFunc(filtered, func(a, b models.Product) int {
			for _, o := range q.orders {
				c := o.key.compare(a, b)
				if o.direction == Descending {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}

	start := clamp(q.skip, 0, len(filtered))
	end := len(filtered)
	if q.hasTake {
		end = clamp(start+q.take, start, len(filtered))
	}
	return filtered[start:end]
}

// builder translates the query into SQL over the products table.
func (q ProductQuery) builder() *query.Builder {
	b := query.From("products").Select(productColumns...)

	if q.available != nil {
		b = b.Where(query.Eq("is_available", *q.available))
	}
	if q.minPrice != nil && q.maxPrice != nil {
		b = b.Where(query.Between("price", *q.minPrice, *q.maxPrice))
	}
	if q.sku != "" {
		b = b.Where(query.Eq("sku", q.sku))
	}
	if q.nameContains != "" {
		b = b.Where(query.ContainsFold("name", q.nameContains))
	}

	for _, o := range q.orders {
		dir := query.Asc
		if o.direction == Descending {
			dir = query.Desc
		}
		b = b.OrderBy(o.key.Column(), dir)
	}
	// id keeps unsorted results, and ties, in a stable order
	b = b.OrderBy("id", query.Asc)

	if q.skip > 0 {
		b = b.Offset(int64(q.skip))
	}
	if q.hasTake {
		b = b.Limit(int64(q.take))
	}
	return b
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
