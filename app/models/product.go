package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product gender values.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnisex = "unisex"
)

// Product represents a catalogue product. Stock is tracked per size in
// ProductSize rows, never on the product itself.
type Product struct {
	gorm.Model
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text"               json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	ImageURL    string          `gorm:"size:500"                json:"image_url"`
	Gender      string          `gorm:"size:10;not null;default:unisex;index" json:"gender"`
	CategoryID  uint            `gorm:"not null;index"          json:"category_id"`
	BrandID     uint            `gorm:"not null;index"          json:"brand_id"`

	Category Category      `json:"category,omitempty"`
	Brand    Brand         `json:"brand,omitempty"`
	Sizes    []ProductSize `gorm:"constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
}

// ProductSize holds the stock quantity of a product in one size.
// A product carries at most one row per size label.
type ProductSize struct {
	gorm.Model
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_size" json:"product_id"`
	Size      string `gorm:"size:20;not null;uniqueIndex:idx_product_size" json:"size"`
	Quantity  int    `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
}

// InStock reports whether this size has at least one unit available.
func (ps ProductSize) InStock() bool { return ps.Quantity > 0 }
