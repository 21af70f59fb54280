package repositories

import (
	"errors"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/orm"
)

// ErrBrandInUse is returned when deleting a brand that still has products.
var ErrBrandInUse = errors.New("brand has products assigned")

// BrandRepository handles database operations for Brand.
type BrandRepository struct{}

func NewBrandRepository() *BrandRepository {
	return &BrandRepository{}
}

// All returns every brand ordered by name.
func (r *BrandRepository) All() ([]models.Brand, error) {
	var brands []models.Brand
	err := orm.DB().Model(&models.Brand{}).Order("name ASC").Get(&brands)
	return brands, err
}

// FindByID loads one brand by primary key.
func (r *BrandRepository) FindByID(id uint) (models.Brand, error) {
	var brand models.Brand
	err := orm.DB().Model(&models.Brand{}).Where("id = ?", id).First(&brand)
	return brand, err
}

// Create persists a new brand record.
func (r *BrandRepository) Create(brand *models.Brand) error {
	return orm.DB().Create(brand)
}

// Update persists changes to an existing brand.
func (r *BrandRepository) Update(brand *models.Brand) error {
	return orm.DB().Save(brand)
}

// Delete removes a brand. Brands that still have products fail with
// ErrBrandInUse.
func (r *BrandRepository) Delete(id uint) error {
	var n int64
	if err := orm.DB().Model(&models.Product{}).Where("brand_id = ?", id).Count(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrBrandInUse
	}
	return orm.DB().Delete(&models.Brand{}, id)
}
