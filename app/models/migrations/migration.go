package migrations

import (
	"github.com/Rakhulsr/go-catalog-api/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.SubCategory{}, &models.Product{}, &models.Media{})
}
