package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	Name          string              `gorm:"size:255;not null" json:"name"`
	Slug          string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description   string              `gorm:"type:text" json:"description"`
	Price         decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price"`
	OldPrice      decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"old_price"`
	Status        string              `gorm:"size:50;index" json:"status"`
	ArrivalStatus string              `gorm:"size:50;index" json:"arrival_status"`
	CategoryID    uint                `gorm:"index;not null" json:"category_id"`
	Category      *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID uint                `gorm:"index;not null" json:"sub_category_id"`
	SubCategory   *SubCategory        `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	Media         []Media             `gorm:"foreignKey:ProductID" json:"media"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
