package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "name is required"})
	}
	if strings.TrimSpace(p.Sku) == "" {
		errs = append(errs, ProductValidationError{Field: "sku", Description: "sku is required"})
	}
	return errs
}
