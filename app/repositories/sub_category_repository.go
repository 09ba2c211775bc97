package repositories

import (
	"context"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"gorm.io/gorm"
)

type SubCategoryRepositoryImpl interface {
	Create(ctx context.Context, subCategory *models.SubCategory) error
	GetByID(ctx context.Context, id uint) (*models.SubCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.SubCategory, error)
	GetPaginated(ctx context.Context, search string, categoryID uint, limit, offset int) ([]models.SubCategory, int64, error)
	Update(ctx context.Context, subCategory *models.SubCategory) error
	Delete(ctx context.Context, id uint) error
}

type subCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepositoryImpl {
	return &subCategoryRepository{db: db}
}

func (r *subCategoryRepository) Create(ctx context.Context, subCategory *models.SubCategory) error {
	return r.db.WithContext(ctx).Create(subCategory).Error
}

func (r *subCategoryRepository) GetByID(ctx context.Context, id uint) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	err := r.db.WithContext(ctx).Preload("Category").First(&subCategory, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	err := r.db.WithContext(ctx).Preload("Category").First(&subCategory, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepository) GetPaginated(ctx context.Context, search string, categoryID uint, limit, offset int) ([]models.SubCategory, int64, error) {
	var subCategories []models.SubCategory
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SubCategory{})
	if search != "" {
		query = query.Where("name LIKE ?", search+"%")
	}
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&subCategories).Error

	return subCategories, total, err
}

func (r *subCategoryRepository) Update(ctx context.Context, subCategory *models.SubCategory) error {
	return r.db.WithContext(ctx).Save(subCategory).Error
}

func (r *subCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SubCategory{}, "id = ?", id).Error
}
