package seeders

import (
	"github.com/Rakhulsr/go-catalog-api/app/db/fakers"
	"gorm.io/gorm"
)

func DBSeed(db *gorm.DB) error {
	for i := 0; i < 3; i++ {
		category := fakers.CategoryFaker()
		if err := db.Create(category).Error; err != nil {
			return err
		}

		for j := 0; j < 2; j++ {
			subCategory := fakers.SubCategoryFaker(category)
			if err := db.Create(subCategory).Error; err != nil {
				return err
			}

			for k := 0; k < 5; k++ {
				product := fakers.ProductFaker(category, subCategory)
				if err := db.Create(product).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
