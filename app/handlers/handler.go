package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog-api/app/repositories"
	"github.com/Rakhulsr/go-catalog-api/app/services"
	"github.com/Rakhulsr/go-catalog-api/app/storage"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type Handler struct {
	render          *render.Render
	validator       *validator.Validate
	categoryRepo    repositories.CategoryRepositoryImpl
	subCategoryRepo repositories.SubCategoryRepositoryImpl
	productRepo     repositories.ProductRepositoryImpl
	catalog         *services.CatalogService
	mediaSync       *services.MediaSyncService
}

func NewHandler(db *gorm.DB, files storage.FileStore) *Handler {
	categoryRepo := repositories.NewCategoryRepository(db)
	subCategoryRepo := repositories.NewSubCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	mediaRepo := repositories.NewMediaRepository(db)

	return &Handler{
		render:          render.New(),
		validator:       validator.New(),
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
		productRepo:     productRepo,
		catalog:         services.NewCatalogService(productRepo, categoryRepo, subCategoryRepo),
		mediaSync:       services.NewMediaSyncService(files, mediaRepo),
	}
}

type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type listResponse struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
}

func (h *Handler) respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	h.render.JSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.render.JSON(w, status, apiResponse{Success: false, Message: message})
}

func (h *Handler) respondValidationErrors(w http.ResponseWriter, errors map[string]string) {
	h.render.JSON(w, http.StatusUnprocessableEntity, apiResponse{
		Success: false,
		Message: "Validation failed.",
		Data:    errors,
	})
}

func (h *Handler) respondPage(w http.ResponseWriter, page *services.Page) {
	h.render.JSON(w, http.StatusOK, listResponse{
		Success:     true,
		Data:        page.Data,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		PerPage:     page.PerPage,
		Total:       page.Total,
	})
}
