package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog-api/app/helpers"
	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/Rakhulsr/go-catalog-api/app/repositories"
	"github.com/Rakhulsr/go-catalog-api/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type productResponse struct {
	*models.Product
	DisplayPrice string `json:"display_price"`
}

func newProductResponse(p *models.Product) productResponse {
	return productResponse{Product: p, DisplayPrice: helpers.FormatPrice(p.Price)}
}

func newProductListResponse(products []models.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i := range products {
		out[i] = newProductResponse(&products[i])
	}
	return out
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	filter := repositories.ProductFilter{
		CategoryID:    parseUintParam(r.URL.Query().Get("category_id")),
		Status:        r.URL.Query().Get("status"),
		ArrivalStatus: r.URL.Query().Get("arrival_status"),
		Search:        r.URL.Query().Get("search"),
	}

	result, err := h.catalog.ListProducts(r.Context(), filter, page, perPage)
	if err != nil {
		log.Printf("ListProducts: failed to fetch products: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch data.")
		return
	}

	if products, ok := result.Data.([]models.Product); ok {
		result.Data = newProductListResponse(products)
	}

	h.respondPage(w, result)
}

func (h *Handler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	identifier := services.ParseIdentifier(mux.Vars(r)["identifier"])

	product, err := h.catalog.FindProduct(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "Product not found.")
			return
		}
		log.Printf("ShowProduct: lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch product.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Data retrieved successfully.", newProductResponse(product))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseRequestForm(r); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	form := StoreProductForm{
		Name:          r.PostFormValue("name"),
		Slug:          r.PostFormValue("slug"),
		Description:   r.PostFormValue("description"),
		Price:         r.PostFormValue("price"),
		OldPrice:      r.PostFormValue("old_price"),
		Status:        r.PostFormValue("status"),
		ArrivalStatus: r.PostFormValue("arrival_status"),
		CategoryID:    r.PostFormValue("category_id"),
		SubCategoryID: r.PostFormValue("sub_category_id"),
	}
	if form.Slug == "" && form.Name != "" {
		form.Slug = helpers.GenerateSlug(form.Name)
	}

	if err := h.validator.Struct(&form); err != nil {
		h.respondValidationErrors(w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		h.respondValidationErrors(w, map[string]string{"price": "Price must be a valid number."})
		return
	}

	oldPrice := decimal.NullDecimal{}
	if form.OldPrice != "" {
		parsed, err := decimal.NewFromString(form.OldPrice)
		if err != nil {
			h.respondValidationErrors(w, map[string]string{"old_price": "Old price must be a valid number."})
			return
		}
		oldPrice = decimal.NullDecimal{Decimal: parsed, Valid: true}
	}

	categoryID := parseUintParam(form.CategoryID)
	if category, err := h.categoryRepo.GetByID(r.Context(), categoryID); err != nil {
		log.Printf("CreateProduct: category lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch category.")
		return
	} else if category == nil {
		h.respondValidationErrors(w, map[string]string{"category_id": "The selected category does not exist."})
		return
	}

	subCategoryID := parseUintParam(form.SubCategoryID)
	if subCategory, err := h.subCategoryRepo.GetByID(r.Context(), subCategoryID); err != nil {
		log.Printf("CreateProduct: sub-category lookup failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch sub-category.")
		return
	} else if subCategory == nil {
		h.respondValidationErrors(w, map[string]string{"sub_category_id": "The selected sub-category does not exist."})
		return
	}

	if exists, err := h.productRepo.IsSlugExists(r.Context(), form.Slug, 0); err != nil {
		log.Printf("CreateProduct: slug check failed: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create product.")
		return
	} else if exists {
		h.respondValidationErrors(w, map[string]string{"slug": "The slug is already taken."})
		return
	}

	images, err := readImageUploads(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to read uploaded images.")
		return
	}
	if len(images) > maxImagesPerProduct {
		h.respondValidationErrors(w, map[string]string{
			"images": fmt.Sprintf("At most %d images are allowed.", maxImagesPerProduct),
		})
		return
	}

	product := &models.Product{
		Name:          form.Name,
		Slug:          form.Slug,
		Description:   form.Description,
		Price:         price,
		OldPrice:      oldPrice,
		Status:        form.Status,
		ArrivalStatus: form.ArrivalStatus,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
	}

	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("CreateProduct: failed to create product: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create product.")
		return
	}

	syncResult, err := h.mediaSync.Sync(r.Context(), product.ID, images)
	if err != nil {
		log.Printf("CreateProduct: media sync failed for product %d: %v", product.ID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to store product images.")
		return
	}

	created, err := h.catalog.FindProduct(r.Context(), services.IdentifierByID(product.ID))
	if err != nil {
		log.Printf("CreateProduct: reload failed for product %d: %v", product.ID, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch product.")
		return
	}

	h.respondSuccess(w, http.StatusCreated, createMessage(syncResult), newProductResponse(created))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := parseUintParam(mux.Vars(r)["id"])

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateProduct: lookup failed for %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch product.")
		return
	}
	if product == nil {
		h.respondError(w, http.StatusNotFound, "Product not found.")
		return
	}

	if err := parseRequestForm(r); err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed form data.")
		return
	}

	form := UpdateProductForm{
		Name:          r.PostFormValue("name"),
		Slug:          r.PostFormValue("slug"),
		Description:   r.PostFormValue("description"),
		Price:         r.PostFormValue("price"),
		OldPrice:      r.PostFormValue("old_price"),
		Status:        r.PostFormValue("status"),
		ArrivalStatus: r.PostFormValue("arrival_status"),
		CategoryID:    r.PostFormValue("category_id"),
		SubCategoryID: r.PostFormValue("sub_category_id"),
	}

	if err := h.validator.Struct(&form); err != nil {
		h.respondValidationErrors(w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	images, err := readImageUploads(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to read uploaded images.")
		return
	}
	if len(images) > maxImagesPerProduct {
		h.respondValidationErrors(w, map[string]string{
			"images": fmt.Sprintf("At most %d images are allowed.", maxImagesPerProduct),
		})
		return
	}

	fields, errMsg, errField := h.buildUpdateFields(r, id)
	if errField != "" {
		h.respondValidationErrors(w, map[string]string{errField: errMsg})
		return
	}

	if err := h.productRepo.UpdateFields(r.Context(), id, fields); err != nil {
		log.Printf("UpdateProduct: failed to update product %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to update product.")
		return
	}

	syncResult, err := h.mediaSync.Sync(r.Context(), id, images)
	if err != nil {
		log.Printf("UpdateProduct: media sync failed for product %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to store product images.")
		return
	}

	updated, err := h.catalog.FindProduct(r.Context(), services.IdentifierByID(id))
	if err != nil {
		log.Printf("UpdateProduct: reload failed for product %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch product.")
		return
	}

	h.respondSuccess(w, http.StatusOK, updateMessage(syncResult), newProductResponse(updated))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := parseUintParam(mux.Vars(r)["id"])

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteProduct: lookup failed for %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to fetch product.")
		return
	}
	if product == nil {
		h.respondError(w, http.StatusNotFound, "Product not found.")
		return
	}

	// Media rows and files go first so the product row never outlives
	// an attached image.
	if err := h.mediaSync.Purge(r.Context(), id); err != nil {
		log.Printf("DeleteProduct: media purge failed for product %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete product media.")
		return
	}

	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteProduct: failed to delete product %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete product.")
		return
	}

	h.respondSuccess(w, http.StatusOK, "Product deleted successfully.", nil)
}

// buildUpdateFields maps only the fields the request actually carried to
// their columns, so untouched fields keep their values. Returns a
// non-empty errField when a carried value fails a semantic check.
func (h *Handler) buildUpdateFields(r *http.Request, id uint) (fields map[string]interface{}, errMsg, errField string) {
	fields = map[string]interface{}{}

	if v, ok := formValue(r, "name"); ok {
		fields["name"] = v
	}
	if v, ok := formValue(r, "slug"); ok {
		exists, err := h.productRepo.IsSlugExists(r.Context(), v, id)
		if err != nil {
			log.Printf("buildUpdateFields: slug check failed: %v", err)
			return nil, "Could not verify the slug.", "slug"
		}
		if exists {
			return nil, "The slug is already taken.", "slug"
		}
		fields["slug"] = v
	}
	if v, ok := formValue(r, "description"); ok {
		fields["description"] = v
	}
	if v, ok := formValue(r, "price"); ok {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return nil, "Price must be a valid number.", "price"
		}
		fields["price"] = parsed
	}
	if v, ok := formValue(r, "old_price"); ok {
		if strings.TrimSpace(v) == "" {
			fields["old_price"] = nil
		} else {
			parsed, err := decimal.NewFromString(v)
			if err != nil {
				return nil, "Old price must be a valid number.", "old_price"
			}
			fields["old_price"] = parsed
		}
	}
	if v, ok := formValue(r, "status"); ok {
		fields["status"] = v
	}
	if v, ok := formValue(r, "arrival_status"); ok {
		fields["arrival_status"] = v
	}
	if v, ok := formValue(r, "category_id"); ok {
		categoryID := parseUintParam(v)
		category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
		if err != nil || category == nil {
			return nil, "The selected category does not exist.", "category_id"
		}
		fields["category_id"] = categoryID
	}
	if v, ok := formValue(r, "sub_category_id"); ok {
		subCategoryID := parseUintParam(v)
		subCategory, err := h.subCategoryRepo.GetByID(r.Context(), subCategoryID)
		if err != nil || subCategory == nil {
			return nil, "The selected sub-category does not exist.", "sub_category_id"
		}
		fields["sub_category_id"] = subCategoryID
	}

	return fields, "", ""
}

func createMessage(result *services.SyncResult) string {
	if len(result.Failed) > 0 {
		return fmt.Sprintf("Product created successfully, but %d image(s) failed to upload: %s.",
			len(result.Failed), strings.Join(result.Failed, ", "))
	}
	return "Product created successfully."
}

func updateMessage(result *services.SyncResult) string {
	if len(result.Failed) > 0 {
		return fmt.Sprintf("Product updated successfully, but %d image(s) failed to upload: %s.",
			len(result.Failed), strings.Join(result.Failed, ", "))
	}
	return "Product updated successfully."
}
