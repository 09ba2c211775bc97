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

func (h *Handler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	search := r.URL.Query().Get("search")
	categoryID := parseUintParam(r.URL.Query().Get("category_id"))

	result, err := h.catalog.ListSubCategories(r.Context(), search, categoryID, page, perPage)
	if err != nil {
		log.Printf("ListSubCategories: failed to fetch sub-categories: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch sub-categories.")
		return
	}

	h.respondPage(w, result)
}

func (h *Handler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseRequestForm(r); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	form := SubCategoryForm{
		CategoryID:  r.PostFormValue("category_id"),
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

	categoryID := parseUintParam(form.CategoryID)
	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		log.Printf("CreateSubCategory: category lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch category.")
		return
	}
	if category == nil {
		h.respondValidationErrors(w, map[string]string{"category_id": "The selected category does not exist."})
		return
	}

	subCategory := &models.SubCategory{
		CategoryID:  categoryID,
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
	}

	if err := h.subCategoryRepo.Create(r.Context(), subCategory); err != nil {
		log.Printf("CreateSubCategory: failed to create sub-category: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create sub-category.")
		return
	}

	h.respondSuccess(w, http.StatusCreated, "Sub-category created successfully.", subCategory)
}

func (h *Handler) ShowSubCategory(w http.ResponseWriter, r *http.Request) {
	identifier := services.ParseIdentifier(mux.Vars(r)["identifier"])

	subCategory, err := h.catalog.FindSubCategory(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Sub-category not found.")
			return
		}
		log.Printf("ShowSubCategory: lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch sub-category.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Data retrieved successfully.", subCategory)
}

func (h *Handler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id := parseUintParam(mux.Vars(r)["id"])

	subCategory, err := h.subCategoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateSubCategory: lookup failed for %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch sub-category.")
		return
	}
	if subCategory == nil {
		h.respondError(w, http.StatusNotFound, "Sub-category not found.")
		return
	}

	if err := parseRequestForm(r); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	form := SubCategoryForm{
		CategoryID:  r.PostFormValue("category_id"),
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

	categoryID := parseUintParam(form.CategoryID)
	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		log.Printf("UpdateSubCategory: category lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch category.")
		return
	}
	if category == nil {
		h.respondValidationErrors(w, map[string]string{"category_id": "The selected category does not exist."})
		return
	}

	subCategory.CategoryID = categoryID
	subCategory.Name = form.Name
	subCategory.Slug = form.Slug
	subCategory.Description = form.Description
	subCategory.Category = nil

	if err := h.subCategoryRepo.Update(r.Context(), subCategory); err != nil {
		log.Printf("UpdateSubCategory: failed to update sub-category %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update sub-category.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Sub-category updated successfully.", subCategory)
}

func (h *Handler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id := parseUintParam(mux.Vars(r)["id"])

	subCategory, err := h.subCategoryRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteSubCategory: lookup failed for %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch sub-category.")
		return
	}
	if subCategory == nil {
		h.respondError(w, http.StatusNotFound, "Sub-category not found.")
		return
	}

	if err := h.subCategoryRepo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteSubCategory: failed to delete sub-category %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete sub-category.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Sub-category deleted successfully.", nil)
}
