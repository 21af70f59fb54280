package controllers_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/auth"
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

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func seedConfig(t *testing.T, db *gorm.DB, password string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.SiteConfig{
		StoreName:         "RR Boots",
		WhatsAppNumber:    "+15550100000",
		AdminPasswordHash: hash,
	}).Error)
}
