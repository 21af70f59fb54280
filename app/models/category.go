package models

import "gorm.io/gorm"

// Category groups products and defines the set of size labels its
// products may carry (shoe sizes for boots, S/M/L for apparel, and so on).
type Category struct {
	gorm.Model
	Name string `gorm:"size:255;not null"      json:"name"`
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"`

	Sizes    []CategorySize `gorm:"constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
	Products []Product      `json:"products,omitempty"`
}

// CategorySize is one admissible size label for a category.
// Position preserves the admin-defined display order.
type CategorySize struct {
	gorm.Model
	CategoryID uint   `gorm:"not null;uniqueIndex:idx_category_size" json:"category_id"`
	Label      string `gorm:"size:20;not null;uniqueIndex:idx_category_size" json:"label"`
	Position   int    `gorm:"not null;default:0" json:"position"`
}
