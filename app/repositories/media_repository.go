package repositories

import (
	"context"

	"github.com/Rakhulsr/go-catalog-api/app/models"
	"gorm.io/gorm"
)

// MediaRepositoryImpl is pure persistence for media rows; the sync
// service owns every decision about which rows should exist.
type MediaRepositoryImpl interface {
	CreateFor(ctx context.Context, productID uint, filePath string) (*models.Media, error)
	ListFor(ctx context.Context, productID uint) ([]models.Media, error)
	DeleteRecord(ctx context.Context, mediaID uint) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepositoryImpl {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) CreateFor(ctx context.Context, productID uint, filePath string) (*models.Media, error) {
	media := &models.Media{
		ProductID: productID,
		FilePath:  filePath,
	}
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepository) ListFor(ctx context.Context, productID uint) ([]models.Media, error) {
	var media []models.Media
	err := r.db.WithContext(ctx).Find(&media, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (r *mediaRepository) DeleteRecord(ctx context.Context, mediaID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Media{}, "id = ?", mediaID).Error
}
