package models

// Category groups products. It owns the ids of its products; products only
// point back through CategoryID.
type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ProductIDs []int  `json:"productIds"`
}
