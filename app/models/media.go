package models

import (
	"time"
)

// Media links a product to one stored image file. FilePath is the
// handle returned by the file store, not a URL.
type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index;not null" json:"product_id"`
	FilePath  string    `gorm:"size:255;not null" json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
