package models

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage = 1
	DefaultSize = 50
)

// ProductQueryParameters holds the optional filter, sort and paging inputs of
// a product listing request.
type ProductQueryParameters struct {
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Sku       string
	Name      string
	SortBy    string
	SortOrder string
	Page      int
	Size      int
}

// NewProductQueryParameters returns parameters with the default page and size.
func NewProductQueryParameters() ProductQueryParameters {
	return ProductQueryParameters{
		Page: DefaultPage,
		Size: DefaultSize,
	}
}

// Offset is the number of items skipped before the requested page.
// Pages below 1 and negative sizes skip nothing.
func (p ProductQueryParameters) Offset() int {
	if p.Page <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Size * (p.Page - 1)
}
