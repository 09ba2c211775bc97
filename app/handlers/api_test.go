package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/Rakhulsr/go-catalog-api/app/models/migrations"
	"github.com/Rakhulsr/go-catalog-api/app/routes"
	"github.com/Rakhulsr/go-catalog-api/app/storage"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type testAPI struct {
	router *mux.Router
	db     *gorm.DB
	files  *storage.DiskStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	files := storage.NewDiskStore(t.TempDir())
	return &testAPI{router: routes.NewRouter(db, files), db: db, files: files}
}

func (a *testAPI) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

// multipartBody builds a product form with the given image filenames
// attached under "images". A nil slice attaches no images field at all.
func multipartBody(t *testing.T, fields map[string]string, imageNames []string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("writing field %s: %v", key, err)
		}
	}
	for _, name := range imageNames {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("creating file part %s: %v", name, err)
		}
		if _, err := part.Write([]byte("fake-image-" + name)); err != nil {
			t.Fatalf("writing file part %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

type productPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Slug  string `json:"slug"`
		Media []struct {
			ID       uint   `json:"id"`
			FilePath string `json:"file_path"`
		} `json:"media"`
	} `json:"data"`
}

func decodeProduct(t *testing.T, rec *httptest.ResponseRecorder) productPayload {
	t.Helper()
	var payload productPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response %s: %v", rec.Body.String(), err)
	}
	return payload
}

func (a *testAPI) seedCategoryAndSub(t *testing.T) (uint, uint) {
	t.Helper()
	rec := a.postForm(t, "/api/categories", url.Values{
		"name": {"Electronics"}, "slug": {"electronics"}, "description": {"Gadgets"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating category: status %d body %s", rec.Code, rec.Body.String())
	}
	var category struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &category); err != nil {
		t.Fatalf("decoding category: %v", err)
	}

	rec = a.postForm(t, "/api/sub-categories", url.Values{
		"category_id": {fmt.Sprint(category.Data.ID)}, "name": {"Phones"}, "slug": {"phones"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating sub-category: status %d body %s", rec.Code, rec.Body.String())
	}
	var subCategory struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &subCategory); err != nil {
		t.Fatalf("decoding sub-category: %v", err)
	}

	return category.Data.ID, subCategory.Data.ID
}

func TestProductLifecycleWithImages(t *testing.T) {
	api := newTestAPI(t)
	categoryID, subCategoryID := api.seedCategoryAndSub(t)

	fields := map[string]string{
		"name":            "Smartphone X",
		"slug":            "smartphone-x",
		"description":     "Flagship phone",
		"price":           "699.99",
		"category_id":     fmt.Sprint(categoryID),
		"sub_category_id": fmt.Sprint(subCategoryID),
	}
	body, contentType := multipartBody(t, fields, []string{"front.jpg", "back.jpg"})
	rec := api.do(t, http.MethodPost, "/api/products", body, contentType)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating product: status %d body %s", rec.Code, rec.Body.String())
	}

	created := decodeProduct(t, rec)
	if len(created.Data.Media) != 2 {
		t.Fatalf("expected 2 media after create, got %d", len(created.Data.Media))
	}
	oldPaths := map[string]bool{}
	for _, m := range created.Data.Media {
		if !api.files.Exists(m.FilePath) {
			t.Fatalf("media file %s missing from store", m.FilePath)
		}
		oldPaths[m.FilePath] = true
	}

	// Replace both images with a single new one.
	body, contentType = multipartBody(t, map[string]string{"name": "Smartphone X2"}, []string{"new.jpg"})
	rec = api.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Data.ID), body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("updating product: status %d body %s", rec.Code, rec.Body.String())
	}

	updated := decodeProduct(t, rec)
	if updated.Data.Name != "Smartphone X2" {
		t.Fatalf("expected renamed product, got %q", updated.Data.Name)
	}
	if updated.Data.Slug != "smartphone-x" {
		t.Fatalf("expected slug untouched on partial update, got %q", updated.Data.Slug)
	}
	if len(updated.Data.Media) != 1 {
		t.Fatalf("expected 1 media after replace, got %d", len(updated.Data.Media))
	}
	if oldPaths[updated.Data.Media[0].FilePath] {
		t.Fatalf("new media reuses an old path: %s", updated.Data.Media[0].FilePath)
	}
	for path := range oldPaths {
		if api.files.Exists(path) {
			t.Fatalf("old file %s still exists after replace", path)
		}
	}
	remainingPath := updated.Data.Media[0].FilePath
	remainingID := updated.Data.Media[0].ID

	// An update without any images field leaves media alone.
	body, contentType = multipartBody(t, map[string]string{"description": "Updated copy"}, nil)
	rec = api.do(t, http.MethodPut, fmt.Sprintf("/api/products/%d", created.Data.ID), body, contentType)
	if rec.Code != http.StatusOK {
		t.Fatalf("no-image update: status %d body %s", rec.Code, rec.Body.String())
	}
	untouched := decodeProduct(t, rec)
	if len(untouched.Data.Media) != 1 {
		t.Fatalf("expected media untouched, got %d rows", len(untouched.Data.Media))
	}
	if untouched.Data.Media[0].ID != remainingID || untouched.Data.Media[0].FilePath != remainingPath {
		t.Fatalf("expected identical media row, got %+v", untouched.Data.Media[0])
	}

	// Destroy removes the row, its media rows, and its files.
	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.Data.ID), nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("deleting product: status %d body %s", rec.Code, rec.Body.String())
	}
	if api.files.Exists(remainingPath) {
		t.Fatalf("file %s survived product deletion", remainingPath)
	}
	var mediaCount int64
	if err := api.db.Model(&models.Media{}).Where("product_id = ?", created.Data.ID).Count(&mediaCount).Error; err != nil {
		t.Fatalf("counting media rows: %v", err)
	}
	if mediaCount != 0 {
		t.Fatalf("expected no media rows after delete, got %d", mediaCount)
	}

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.Data.ID), nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted product, got %d", rec.Code)
	}
}

func TestShowProduct_IdentifierDispatch(t *testing.T) {
	api := newTestAPI(t)
	categoryID, subCategoryID := api.seedCategoryAndSub(t)

	rec := api.postForm(t, "/api/products", url.Values{
		"name":            {"Gadget"},
		"slug":            {"gadget"},
		"price":           {"19.99"},
		"category_id":     {fmt.Sprint(categoryID)},
		"sub_category_id": {fmt.Sprint(subCategoryID)},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating product: status %d body %s", rec.Code, rec.Body.String())
	}
	created := decodeProduct(t, rec)

	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/products/%d", created.Data.ID), nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("show by id: status %d", rec.Code)
	}

	rec = api.do(t, http.MethodGet, "/api/products/gadget", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("show by slug: status %d", rec.Code)
	}
	if got := decodeProduct(t, rec).Data.ID; got != created.Data.ID {
		t.Fatalf("slug lookup returned product %d, want %d", got, created.Data.ID)
	}

	rec = api.do(t, http.MethodGet, "/api/products/does-not-exist", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown identifier, got %d", rec.Code)
	}
}

func TestCreateProduct_ValidationAndLimits(t *testing.T) {
	api := newTestAPI(t)
	categoryID, subCategoryID := api.seedCategoryAndSub(t)

	// Missing required fields.
	rec := api.postForm(t, "/api/products", url.Values{"name": {"Incomplete"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing fields, got %d body %s", rec.Code, rec.Body.String())
	}

	// Too many images.
	fields := map[string]string{
		"name":            "Overloaded",
		"slug":            "overloaded",
		"price":           "10",
		"category_id":     fmt.Sprint(categoryID),
		"sub_category_id": fmt.Sprint(subCategoryID),
	}
	names := []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"}
	body, contentType := multipartBody(t, fields, names)
	rec = api.do(t, http.MethodPost, "/api/products", body, contentType)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for too many images, got %d body %s", rec.Code, rec.Body.String())
	}

	// Unknown category.
	rec = api.postForm(t, "/api/products", url.Values{
		"name":            {"Orphan"},
		"slug":            {"orphan"},
		"price":           {"10"},
		"category_id":     {"9999"},
		"sub_category_id": {fmt.Sprint(subCategoryID)},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown category, got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestListProducts_EnvelopeCounters(t *testing.T) {
	api := newTestAPI(t)
	categoryID, subCategoryID := api.seedCategoryAndSub(t)

	for i := 0; i < 12; i++ {
		rec := api.postForm(t, "/api/products", url.Values{
			"name":            {fmt.Sprintf("Item %d", i)},
			"slug":            {fmt.Sprintf("item-%d", i)},
			"price":           {"5"},
			"category_id":     {fmt.Sprint(categoryID)},
			"sub_category_id": {fmt.Sprint(subCategoryID)},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("seeding product %d: status %d", i, rec.Code)
		}
	}

	rec := api.do(t, http.MethodGet, "/api/products", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("listing products: status %d", rec.Code)
	}

	var listing struct {
		Success     bool            `json:"success"`
		Data        json.RawMessage `json:"data"`
		CurrentPage int             `json:"current_page"`
		TotalPages  int             `json:"total_pages"`
		PerPage     int             `json:"per_page"`
		Total       int64           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if !listing.Success {
		t.Fatal("expected success envelope")
	}
	if listing.Total != 12 || listing.TotalPages != 2 || listing.PerPage != 10 || listing.CurrentPage != 1 {
		t.Fatalf("unexpected counters: %+v", listing)
	}

	rec = api.do(t, http.MethodGet, "/api/products?paginate_count=5&page=3", nil, "")
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if listing.PerPage != 5 || listing.CurrentPage != 3 || listing.TotalPages != 3 {
		t.Fatalf("unexpected counters with paginate_count: %+v", listing)
	}
}
