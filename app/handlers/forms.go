package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Rakhulsr/go-catalog-api/app/services"
)

// maxImagesPerProduct mirrors the upload limit the API documents.
const maxImagesPerProduct = 5

const maxUploadMemory = 32 << 20

type CategoryForm struct {
	Name        string `validate:"required,max=100"`
	Slug        string `validate:"required,max=100"`
	Description string `validate:"omitempty"`
}

type SubCategoryForm struct {
	CategoryID  string `validate:"required,numeric"`
	Name        string `validate:"required,max=100"`
	Slug        string `validate:"required,max=100"`
	Description string `validate:"omitempty"`
}

type StoreProductForm struct {
	Name          string `validate:"required,max=255"`
	Slug          string `validate:"required,max=255"`
	Description   string `validate:"omitempty"`
	Price         string `validate:"required,numeric"`
	OldPrice      string `validate:"omitempty,numeric"`
	Status        string `validate:"omitempty,max=50"`
	ArrivalStatus string `validate:"omitempty,max=50"`
	CategoryID    string `validate:"required,numeric"`
	SubCategoryID string `validate:"required,numeric"`
}

type UpdateProductForm struct {
	Name          string `validate:"omitempty,max=255"`
	Slug          string `validate:"omitempty,max=255"`
	Description   string `validate:"omitempty"`
	Price         string `validate:"omitempty,numeric"`
	OldPrice      string `validate:"omitempty,numeric"`
	Status        string `validate:"omitempty,max=50"`
	ArrivalStatus string `validate:"omitempty,max=50"`
	CategoryID    string `validate:"omitempty,numeric"`
	SubCategoryID string `validate:"omitempty,numeric"`
}

// parseRequestForm accepts both multipart (file uploads) and plain
// url-encoded bodies.
func parseRequestForm(r *http.Request) error {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err == http.ErrNotMultipart {
		return r.ParseForm()
	}
	return err
}

// formValue reports whether the field was present at all, so handlers
// can tell "not sent" apart from "sent empty" on partial updates.
func formValue(r *http.Request, name string) (string, bool) {
	vals, ok := r.PostForm[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// readImageUploads drains the "images" file field. A request without the
// field yields nil, which downstream means "leave media alone"; this is
// distinct from an empty slice.
func readImageUploads(r *http.Request) ([]services.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files, ok := r.MultipartForm.File["images"]
	if !ok {
		return nil, nil
	}

	images := []services.ImageUpload{}
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, services.ImageUpload{
			Filename: header.Filename,
			Content:  content,
		})
	}
	return images, nil
}

func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = services.DefaultPerPage

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("paginate_count"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= services.MinPerPage {
			perPage = v
		}
	}
	return page, perPage
}

func parseUintParam(raw string) uint {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
