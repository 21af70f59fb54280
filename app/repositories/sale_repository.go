package repositories

import (
	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/orm"
)

// SaleRepository handles database reads for Sale. Sales are written only
// by the sale service's transaction, never through this repository.
type SaleRepository struct{}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

// List returns one page of sales, newest first, with line items preloaded.
// Page defaults to 1 and limit to 20.
func (r *SaleRepository) List(page, limit int) ([]models.Sale, orm.Pagination, error) {
	var sales []models.Sale
	pagination, err := orm.DB().
		Model(&models.Sale{}).
		Preload("Items").
		Order("created_at DESC").
		GetWithPagination(&sales, page, limit)
	return sales, pagination, err
}

// FindByID loads one sale with its line items.
func (r *SaleRepository) FindByID(id uint) (models.Sale, error) {
	var sale models.Sale
	err := orm.DB().
		Model(&models.Sale{}).
		Preload("Items").
		Where("id = ?", id).
		First(&sale)
	return sale, err
}
