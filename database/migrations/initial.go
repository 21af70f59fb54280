package migrations

import (
	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260301000001_create_sales_tables", &CreateSalesTables{})
	migration.Register("20260301000002_create_site_config_table", &CreateSiteConfigTable{})
	migration.Register("20260828000000_add_profile_columns", &AddProfileColumns{})
}

// -------- 0001: catalogue --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Brand{},
		&models.Category{},
		&models.CategorySize{},
		&models.Product{},
		&models.ProductSize{},
	)
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		"product_sizes", "products", "category_sizes", "categories", "brands",
	)
}

// -------- 0002: sales --------

type CreateSalesTables struct{}

func (m *CreateSalesTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Sale{}, &models.SaleItem{})
}

func (m *CreateSalesTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sale_items", "sales")
}

// -------- 0003: site config --------

type CreateSiteConfigTable struct{}

func (m *CreateSiteConfigTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.SiteConfig{})
}

func (m *CreateSiteConfigTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("site_configs")
}

// -------- 0004: brand/sale/site profile columns --------

type AddProfileColumns struct{}

func (m *AddProfileColumns) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Brand{}, &models.Sale{}, &models.SiteConfig{})
}

func (m *AddProfileColumns) Down(db *gorm.DB) error {
	for table, columns := range map[interface{}][]string{
		&models.Brand{}:      {"logo_url", "site_url"},
		&models.Sale{}:       {"customer_email", "status"},
		&models.SiteConfig{}: {"description", "footer_text", "logo_url"},
	} {
		for _, col := range columns {
			if err := db.Migrator().DropColumn(table, col); err != nil {
				return err
			}
		}
	}
	return nil
}
