package repo

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrConcurrencyConflict is returned by Update when no row was affected.
	ErrConcurrencyConflict = errors.New("product was changed or removed concurrently")
)
