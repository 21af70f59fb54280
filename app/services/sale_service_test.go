package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/database"
)

// setupDB swaps the global handle for a fresh in-memory database.
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

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, sizes map[string]int) models.Product {
	t.Helper()

	brand := models.Brand{Name: "Ranger", Slug: "ranger-" + name}
	require.NoError(t, db.Create(&brand).Error)
	category := models.Category{Name: "Boots", Slug: "boots-" + name}
	require.NoError(t, db.Create(&category).Error)

	p := models.Product{
		Name:       name,
		Price:      decimal.NewFromFloat(price),
		Gender:     models.GenderUnisex,
		BrandID:    brand.ID,
		CategoryID: category.ID,
	}
	for size, qty := range sizes {
		p.Sizes = append(p.Sizes, models.ProductSize{Size: size, Quantity: qty})
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func quantityOf(t *testing.T, db *gorm.DB, productID uint, size string) int {
	t.Helper()
	var ps models.ProductSize
	require.NoError(t, db.Where("product_id = ? AND size = ?", productID, size).First(&ps).Error)
	return ps.Quantity
}

func TestRecordDecrementsStock(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Classic Boot", 100, map[string]int{"42": 5})

	svc := services.NewSaleService()
	sale, err := svc.Record("Ana", "ana@example.com", "+155501", []services.SaleLine{
		{ProductID: p.ID, Size: "42", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, quantityOf(t, db, p.ID, "42"))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Classic Boot", sale.Items[0].ProductName)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(200)), "total was %s", sale.Total)
}

func TestRecordSnapshotsPriceAndName(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Western Boot", 149.50, map[string]int{"39": 2})

	svc := services.NewSaleService()
	sale, err := svc.Record("", "", "", []services.SaleLine{
		{ProductID: p.ID, Size: "39", Quantity: 1},
	})
	require.NoError(t, err)

	// Rewrite the product after the sale; the line item must not move.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Updates(map[string]interface{}{"name": "Renamed", "price": "999"}).Error)

	var item models.SaleItem
	require.NoError(t, db.Where("sale_id = ?", sale.ID).First(&item).Error)
	assert.Equal(t, "Western Boot", item.ProductName)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(149.50)))
}

func TestRecordInsufficientStock(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Low Stock Boot", 80, map[string]int{"41": 1})

	svc := services.NewSaleService()
	_, err := svc.Record("", "", "", []services.SaleLine{
		{ProductID: p.ID, Size: "41", Quantity: 3},
	})

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Low Stock Boot", stockErr.Product)
	assert.Equal(t, "41", stockErr.Size)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	// Nothing was taken and no sale was written.
	assert.Equal(t, 1, quantityOf(t, db, p.ID, "41"))
	var n int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecordUnknownSizeReportsZeroAvailable(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "One Size Boot", 60, map[string]int{"40": 4})

	svc := services.NewSaleService()
	_, err := svc.Record("", "", "", []services.SaleLine{
		{ProductID: p.ID, Size: "45", Quantity: 1},
	})

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Zero(t, stockErr.Available)
}

func TestRecordIsAllOrNothing(t *testing.T) {
	db := setupDB(t)
	a := seedProduct(t, db, "Boot A", 50, map[string]int{"42": 5})
	b := seedProduct(t, db, "Boot B", 70, map[string]int{"42": 5})

	// A's line is satisfiable, B's is not. The whole sale must fail with
	// neither quantity touched.
	svc := services.NewSaleService()
	_, err := svc.Record("", "", "", []services.SaleLine{
		{ProductID: a.ID, Size: "42", Quantity: 2},
		{ProductID: b.ID, Size: "42", Quantity: 6},
	})

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Boot B", stockErr.Product)

	// A's decrement rolled back with the transaction.
	assert.Equal(t, 5, quantityOf(t, db, a.ID, "42"))
	assert.Equal(t, 5, quantityOf(t, db, b.ID, "42"))
}

func TestRecordLastUnitLosesCleanly(t *testing.T) {
	// Two buyers race for the last unit. The conditional decrement means
	// exactly one succeeds regardless of interleaving; here the second
	// request runs after the first committed, the worst case the pre-check
	// alone would miss.
	db := setupDB(t)
	p := seedProduct(t, db, "Last Pair", 120, map[string]int{"43": 1})

	svc := services.NewSaleService()
	_, err := svc.Record("first", "", "", []services.SaleLine{
		{ProductID: p.ID, Size: "43", Quantity: 1},
	})
	require.NoError(t, err)

	_, err = svc.Record("second", "", "", []services.SaleLine{
		{ProductID: p.ID, Size: "43", Quantity: 1},
	})
	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Zero(t, stockErr.Available)
	assert.Equal(t, 0, quantityOf(t, db, p.ID, "43"))

	var n int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRecordDuplicateLinesRollBackInCommit(t *testing.T) {
	// Two lines for the same size each fit the stock on their own, so the
	// pre-check waves the cart through; the sum does not. The second
	// conditional UPDATE matches no row and the whole transaction rolls
	// back, including the first line's decrement.
	db := setupDB(t)
	p := seedProduct(t, db, "Split Cart Boot", 90, map[string]int{"42": 3})

	svc := services.NewSaleService()
	_, err := svc.Record("", "", "", []services.SaleLine{
		{ProductID: p.ID, Size: "42", Quantity: 2},
		{ProductID: p.ID, Size: "42", Quantity: 2},
	})

	var stockErr *services.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Requested)
	// Available reflects the stock after the first line's decrement, the
	// state the losing UPDATE actually saw.
	assert.Equal(t, 1, stockErr.Available)

	assert.Equal(t, 3, quantityOf(t, db, p.ID, "42"))
	var n int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecordWritesCompletedStatus(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Status Boot", 75, map[string]int{"40": 2})

	svc := services.NewSaleService()
	sale, err := svc.Record("Ana", "ana@example.com", "+155501", []services.SaleLine{
		{ProductID: p.ID, Size: "40", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, models.SaleStatusCompleted, sale.Status)

	var stored models.Sale
	require.NoError(t, db.First(&stored, sale.ID).Error)
	assert.Equal(t, models.SaleStatusCompleted, stored.Status)
	assert.Equal(t, "ana@example.com", stored.CustomerEmail)
}

func TestRecordConservation(t *testing.T) {
	db := setupDB(t)
	p := seedProduct(t, db, "Counted Boot", 10, map[string]int{"42": 10})

	svc := services.NewSaleService()
	sold := 0
	for i := 0; i < 4; i++ {
		_, err := svc.Record("", "", "", []services.SaleLine{
			{ProductID: p.ID, Size: "42", Quantity: 3},
		})
		if err == nil {
			sold += 3
			continue
		}
		var stockErr *services.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
	}

	// 3 sales of 3 fit into 10, the 4th is rejected.
	assert.Equal(t, 9, sold)
	assert.Equal(t, 1, quantityOf(t, db, p.ID, "42"))
}

func TestRecordEmptyCart(t *testing.T) {
	setupDB(t)
	svc := services.NewSaleService()
	_, err := svc.Record("", "", "", nil)
	require.Error(t, err)
}
