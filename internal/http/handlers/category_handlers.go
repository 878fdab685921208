package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/hplussport-catalog/internal/repo"
)

// GetCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {string} string "Internal error"
// @Router /categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	sess, ok := acquire(w, r)
	if !ok {
		return
	}
	defer release(sess)

	categories, err := sess.Categories().GetAll(r.Context())
	if err != nil {
		serverError(w, r, "could not fetch categories", err)
		return
	}
	respond(w, r, http.StatusOK, categories)
}

// GetCategoryByIDHandler godoc
// @Summary Get category by ID
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /categories/{id} [get]
func GetCategoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid category ID", http.StatusBadRequest)
		return
	}

	sess, ok := acquire(w, r)
	if !ok {
		return
	}
	defer release(sess)

	category, err := sess.Categories().GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}
		serverError(w, r, "could not fetch category", err)
		return
	}
	respond(w, r, http.StatusOK, category)
}
