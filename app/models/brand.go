package models

import "gorm.io/gorm"

// Brand is a product manufacturer. The slug is derived from the name at
// save time and used in storefront filter URLs.
type Brand struct {
	gorm.Model
	Name    string `gorm:"size:255;not null"             json:"name"`
	Slug    string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	LogoURL string `gorm:"size:500" json:"logo_url"`
	SiteURL string `gorm:"size:500" json:"site_url"`

	Products []Product `json:"products,omitempty"`
}
