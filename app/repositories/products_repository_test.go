package repositories_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"github.com/Rakhulsr/go-catalog-api/app/models/migrations"
	"github.com/Rakhulsr/go-catalog-api/app/repositories"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, slug string) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Cat", Slug: "cat-" + slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	subCategory := &models.SubCategory{CategoryID: category.ID, Name: "Sub", Slug: "sub-" + slug}
	if err := db.Create(subCategory).Error; err != nil {
		t.Fatalf("seed sub-category: %v", err)
	}
	product := &models.Product{
		Name:          "Widget",
		Slug:          slug,
		Description:   "original description",
		Price:         decimal.NewFromFloat(10.50),
		Status:        "active",
		CategoryID:    category.ID,
		SubCategoryID: subCategory.ID,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestProductRepository_UpdateFieldsIsPartial(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "widget")

	err := repo.UpdateFields(ctx, product.ID, map[string]interface{}{
		"name":  "Renamed Widget",
		"price": decimal.NewFromFloat(12.00),
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	updated, err := repo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Name != "Renamed Widget" {
		t.Fatalf("expected renamed product, got %q", updated.Name)
	}
	if !updated.Price.Equal(decimal.NewFromFloat(12.00)) {
		t.Fatalf("expected price 12.00, got %s", updated.Price)
	}
	if updated.Description != "original description" {
		t.Fatalf("expected untouched description, got %q", updated.Description)
	}
	if updated.Slug != "widget" {
		t.Fatalf("expected untouched slug, got %q", updated.Slug)
	}
	if updated.Status != "active" {
		t.Fatalf("expected untouched status, got %q", updated.Status)
	}
}

func TestProductRepository_UpdateFieldsEmptyMapIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "widget")

	if err := repo.UpdateFields(ctx, product.ID, map[string]interface{}{}); err != nil {
		t.Fatalf("UpdateFields with empty map: %v", err)
	}

	updated, err := repo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Name != product.Name {
		t.Fatalf("expected untouched name, got %q", updated.Name)
	}
}

func TestProductRepository_IsSlugExists(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "widget")

	exists, err := repo.IsSlugExists(ctx, "widget", 0)
	if err != nil {
		t.Fatalf("IsSlugExists: %v", err)
	}
	if !exists {
		t.Fatal("expected slug to exist")
	}

	// The owning product is excluded, so its own slug is available to it.
	exists, err = repo.IsSlugExists(ctx, "widget", product.ID)
	if err != nil {
		t.Fatalf("IsSlugExists excluding owner: %v", err)
	}
	if exists {
		t.Fatal("expected slug to be free when its owner is excluded")
	}

	exists, err = repo.IsSlugExists(ctx, "other", 0)
	if err != nil {
		t.Fatalf("IsSlugExists unknown: %v", err)
	}
	if exists {
		t.Fatal("expected unknown slug to be free")
	}
}

func TestProductRepository_DeleteAndNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "widget")

	if err := repo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	gone, err := repo.GetByID(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if gone != nil {
		t.Fatal("expected nil for a deleted product")
	}
}

func TestMediaRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewMediaRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "widget")

	first, err := repo.CreateFor(ctx, product.ID, "uploads/one.jpg")
	if err != nil {
		t.Fatalf("CreateFor: %v", err)
	}
	if _, err := repo.CreateFor(ctx, product.ID, "uploads/two.jpg"); err != nil {
		t.Fatalf("CreateFor: %v", err)
	}

	media, err := repo.ListFor(ctx, product.ID)
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	if len(media) != 2 {
		t.Fatalf("expected 2 media rows, got %d", len(media))
	}

	if err := repo.DeleteRecord(ctx, first.ID); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}

	media, err = repo.ListFor(ctx, product.ID)
	if err != nil {
		t.Fatalf("ListFor after delete: %v", err)
	}
	if len(media) != 1 || media[0].FilePath != "uploads/two.jpg" {
		t.Fatalf("expected only uploads/two.jpg left, got %+v", media)
	}
}
