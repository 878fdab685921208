package models

import "github.com/shopspring/decimal"

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product entity in the catalog.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Sku         string          `json:"sku"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	IsAvailable bool            `json:"isAvailable"`
	CategoryID  int             `json:"categoryId"`
}
