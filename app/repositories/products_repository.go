package repositories

import (
	"context"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"gorm.io/gorm"
)

// ProductFilter narrows the paginated product listing. Zero values mean
// the filter is not applied.
type ProductFilter struct {
	CategoryID    uint
	Status        string
	ArrivalStatus string
	Search        string
}

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetPaginated(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	IsSlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Media").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("SubCategory").
		Preload("Media").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetPaginated(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := p.db.WithContext(ctx).Model(&models.Product{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ArrivalStatus != "" {
		query = query.Where("arrival_status = ?", filter.ArrivalStatus)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Category").
		Preload("SubCategory").
		Preload("Media").
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

// UpdateFields writes only the given columns, leaving everything else
// untouched. Callers build the map from the fields the request actually
// carried.
func (p *productRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (p *productRepository) Delete(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (p *productRepository) IsSlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := p.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
