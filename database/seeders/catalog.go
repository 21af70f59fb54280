package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/auth"
	"github.com/rrboots/storefront/pkg/slug"
)

func init() {
	Register("site_config", SeedSiteConfig)
	Register("catalog", SeedCatalog)
}

// SeedSiteConfig creates the singleton settings row with the default
// credentials (admin / admin123). Skipped when a row already exists.
func SeedSiteConfig(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.SiteConfig{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	return db.Create(&models.SiteConfig{
		StoreName:         "RR Boots",
		WhatsAppNumber:    "+15550100000",
		AdminPasswordHash: hash,
	}).Error
}

// SeedCatalog inserts a small demo catalogue. Skipped when products exist.
func SeedCatalog(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	boots := models.Category{Name: "Boots", Slug: slug.Make("Boots")}
	for i, label := range []string{"38", "39", "40", "41", "42", "43", "44"} {
		boots.Sizes = append(boots.Sizes, models.CategorySize{Label: label, Position: i})
	}
	if err := db.Create(&boots).Error; err != nil {
		return err
	}

	apparel := models.Category{Name: "Apparel", Slug: slug.Make("Apparel")}
	for i, label := range []string{"S", "M", "L", "XL"} {
		apparel.Sizes = append(apparel.Sizes, models.CategorySize{Label: label, Position: i})
	}
	if err := db.Create(&apparel).Error; err != nil {
		return err
	}

	ranger := models.Brand{Name: "Ranger", Slug: slug.Make("Ranger")}
	tierra := models.Brand{Name: "Tierra Alta", Slug: slug.Make("Tierra Alta")}
	for _, b := range []*models.Brand{&ranger, &tierra} {
		if err := db.Create(b).Error; err != nil {
			return err
		}
	}

	products := []models.Product{
		{
			Name:        "Classic Leather Boot",
			Description: "Full-grain leather with a lugged sole.",
			Price:       decimal.NewFromFloat(129.90),
			Gender:      models.GenderMale,
			CategoryID:  boots.ID,
			BrandID:     ranger.ID,
			Sizes: []models.ProductSize{
				{Size: "40", Quantity: 5},
				{Size: "41", Quantity: 3},
				{Size: "42", Quantity: 0},
			},
		},
		{
			Name:        "Western Ankle Boot",
			Description: "Pointed toe, stacked heel.",
			Price:       decimal.NewFromFloat(149.50),
			Gender:      models.GenderFemale,
			CategoryID:  boots.ID,
			BrandID:     tierra.ID,
			Sizes: []models.ProductSize{
				{Size: "38", Quantity: 4},
				{Size: "39", Quantity: 2},
			},
		},
		{
			Name:        "Trail Flannel Shirt",
			Description: "Brushed cotton flannel.",
			Price:       decimal.NewFromFloat(39.00),
			Gender:      models.GenderUnisex,
			CategoryID:  apparel.ID,
			BrandID:     ranger.ID,
			Sizes: []models.ProductSize{
				{Size: "M", Quantity: 10},
				{Size: "L", Quantity: 8},
			},
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
