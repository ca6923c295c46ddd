package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProductCategory string

const (
	CategoryTShirt ProductCategory = "t-shirt"
	CategoryHoodie ProductCategory = "hoodie"
)

// ValidCategory reports whether s is one of the known product categories.
func ValidCategory(s string) bool {
	switch ProductCategory(s) {
	case CategoryTShirt, CategoryHoodie:
		return true
	}
	return false
}

type Product struct {
	ID          uint                         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                       `gorm:"not null" json:"name"`
	Description string                       `json:"description"`
	Price       float64                      `gorm:"not null" json:"price"`
	Category    ProductCategory              `gorm:"type:VARCHAR(20);not null" json:"category"`
	ImageURL    string                       `json:"image_url"`
	Sizes       datatypes.JSONSlice[string]  `json:"sizes"`
	Colors      datatypes.JSONSlice[string]  `json:"colors"`
	Stock       int                          `gorm:"not null;default:0" json:"stock"`
	Featured    bool                         `gorm:"default:false" json:"featured"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}
