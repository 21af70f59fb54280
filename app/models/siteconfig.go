package models

import "gorm.io/gorm"

// SiteConfig is the singleton settings row. Exactly one record exists; it
// is created on boot if missing and every read targets the first row.
type SiteConfig struct {
	gorm.Model
	StoreName         string `gorm:"size:255;not null;default:'RR Boots'" json:"store_name"`
	Description       string `gorm:"type:text"        json:"description"`
	WhatsAppNumber    string `gorm:"size:32;not null" json:"whatsapp_number"`
	Announcement      string `gorm:"type:text"        json:"announcement"`
	FooterText        string `gorm:"type:text"        json:"footer_text"`
	LogoURL           string `gorm:"size:500"         json:"logo_url"`
	AdminPasswordHash string `gorm:"size:255;not null" json:"-"`
}
