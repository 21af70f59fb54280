package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Brand{},
		&models.Category{},
		&models.CategorySize{},
		&models.Product{},
		&models.ProductSize{},
		&models.Sale{},
		&models.SaleItem{},
		&models.SiteConfig{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
	return db
}

// fixtures creates a brand, a category and one product builder bound to them.
type fixtures struct {
	db       *gorm.DB
	brand    models.Brand
	category models.Category
}

func newFixtures(t *testing.T, db *gorm.DB) *fixtures {
	t.Helper()
	f := &fixtures{db: db}
	f.brand = models.Brand{Name: "Ranger", Slug: "ranger"}
	require.NoError(t, db.Create(&f.brand).Error)
	f.category = models.Category{Name: "Boots", Slug: "boots"}
	require.NoError(t, db.Create(&f.category).Error)
	return f
}

func (f *fixtures) product(t *testing.T, name, gender string, sizes map[string]int) models.Product {
	t.Helper()
	p := models.Product{
		Name:       name,
		Price:      decimal.NewFromInt(100),
		Gender:     gender,
		BrandID:    f.brand.ID,
		CategoryID: f.category.ID,
	}
	for size, qty := range sizes {
		p.Sizes = append(p.Sizes, models.ProductSize{Size: size, Quantity: qty})
	}
	require.NoError(t, f.db.Create(&p).Error)
	return p
}
