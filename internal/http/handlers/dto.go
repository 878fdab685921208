package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/hplussport-catalog/internal/models"
)

type ProductRequest struct {
	ID          int             `json:"id,omitempty"`
	Name        string          `json:"name"`
	Sku         string          `json:"sku"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	IsAvailable bool            `json:"isAvailable"`
	CategoryID  int             `json:"categoryId"`
}

func (p ProductRequest) toModel() models.Product {
	return models.Product{
		ID:          p.ID,
		Name:        p.Name,
		Sku:         p.Sku,
		Price:       p.Price,
		IsAvailable: p.IsAvailable,
		CategoryID:  p.CategoryID,
	}
}
