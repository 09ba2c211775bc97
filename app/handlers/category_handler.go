package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-catalog-api/app/helpers"
	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/Rakhulsr/go-catalog-api/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	search := r.URL.Query().Get("search")

	result, err := h.catalog.ListCategories(r.Context(), search, page, perPage)
	if err != nil {
		log.Printf("ListCategories: failed to fetch categories: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch categories.")
		return
	}

	h.respondPage(w, result)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseRequestForm(r); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	form := CategoryForm{
		Name:        r.PostFormValue("name"),
		Slug:        r.PostFormValue("slug"),
		Description: r.PostFormValue("description"),
	}
	if form.Slug == "" && form.Name != "" {
		form.Slug = helpers.GenerateSlug(form.Name)
	}

	if err := h.validator.Struct(&form); err != nil {
		h.respondValidationErrors(w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	category := &models.Category{
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
	}

	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		log.Printf("CreateCategory: failed to create category: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create category.")
		return
	}

	h.respondSuccess(w, http.StatusCreated, "Category created successfully.", category)
}

func (h *Handler) ShowCategory(w http.ResponseWriter, r *http.Request) {
	identifier := services.ParseIdentifier(mux.Vars(r)["identifier"])

	category, err := h.catalog.FindCategory(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Category not found.")
			return
		}
		log.Printf("ShowCategory: lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch category.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Data retrieved successfully.", category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := parseUintParam(mux.Vars(r)["id"])

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateCategory: lookup failed for %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch category.")
		return
	}
	if category == nil {
		h.respondError(w, http.StatusNotFound, "Category not found.")
		return
	}

	if err := parseRequestForm(r); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	form := CategoryForm{
		Name:        r.PostFormValue("name"),
		Slug:        r.PostFormValue("slug"),
		Description: r.PostFormValue("description"),
	}
	if form.Slug == "" && form.Name != "" {
		form.Slug = helpers.GenerateSlug(form.Name)
	}

	if err := h.validator.Struct(&form); err != nil {
		h.respondValidationErrors(w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	category.Name = form.Name
	category.Slug = form.Slug
	category.Description = form.Description

	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		log.Printf("UpdateCategory: failed to update category %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update category.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Category updated successfully.", category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := parseUintParam(mux.Vars(r)["id"])

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteCategory: lookup failed for %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch category.")
		return
	}
	if category == nil {
		h.respondError(w, http.StatusNotFound, "Category not found.")
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteCategory: failed to delete category %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete category.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Category deleted successfully.", nil)
}
