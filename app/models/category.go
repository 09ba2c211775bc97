package models

import (
	"time"
)

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:100;not null" json:"name"`
	Slug          string        `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description   string        `gorm:"type:text" json:"description"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"`
	Products      []Product     `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
