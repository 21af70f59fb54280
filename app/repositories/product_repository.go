package repositories

import (
	"errors"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/orm"
	"gorm.io/gorm"
)

// ProductFilter narrows a catalogue listing. Zero values mean "no filter".
type ProductFilter struct {
	// Size keeps only products with positive stock in this size.
	Size string
	// CategorySlug keeps products belonging to the category with this slug.
	CategorySlug string
	// Gender keeps products sold as male, female or unisex.
	Gender string
	// BrandID keeps products of one brand.
	BrandID uint
}

// ProductRepository handles database operations for Product and ProductSize.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// List returns products matching the filter, newest first, with sizes,
// category and brand preloaded.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, error) {
	q := orm.DB().
		Model(&models.Product{}).
		Preload("Sizes").
		Preload("Category").
		Preload("Brand")

	if f.Size != "" {
		q = q.Joins(
			"JOIN product_sizes ps ON ps.product_id = products.id AND ps.size = ? AND ps.quantity > 0 AND ps.deleted_at IS NULL",
			f.Size,
		).Distinct("products.*")
	}
	if f.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.Gender != "" {
		q = q.Where("products.gender = ?", f.Gender)
	}
	if f.BrandID != 0 {
		q = q.Where("products.brand_id = ?", f.BrandID)
	}

	var products []models.Product
	err := q.Order("products.created_at DESC").Get(&products)
	return products, err
}

// FindByID loads one product with its sizes, category and brand.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Sizes").
		Preload("Category").
		Preload("Brand").
		Where("id = ?", id).
		First(&product)
	return product, err
}

// Create persists a new product together with its size rows.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update saves product fields and replaces its size rows with sizes.
// Quantities of sizes that survive the replacement are carried over.
func (r *ProductRepository) Update(product *models.Product, sizes []models.ProductSize) error {
	return orm.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Sizes").Save(product).Error; err != nil {
			return err
		}

		var existing []models.ProductSize
		if err := tx.Where("product_id = ?", product.ID).Find(&existing).Error; err != nil {
			return err
		}
		current := make(map[string]models.ProductSize, len(existing))
		for _, ps := range existing {
			current[ps.Size] = ps
		}

		keep := make(map[string]bool, len(sizes))
		for i := range sizes {
			sizes[i].ProductID = product.ID
			keep[sizes[i].Size] = true

			if prev, ok := current[sizes[i].Size]; ok {
				prev.Quantity = sizes[i].Quantity
				if err := tx.Save(&prev).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Create(&sizes[i]).Error; err != nil {
				return err
			}
		}

		for size, ps := range current {
			if !keep[size] {
				if err := tx.Delete(&ps).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Delete removes a product with its size rows and the sale items that
// reference it, in one transaction.
func (r *ProductRepository) Delete(id uint) error {
	return orm.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// SetQuantity updates the stock of one product size, creating the row if
// it does not exist yet.
func (r *ProductRepository) SetQuantity(productID uint, size string, quantity int) error {
	var ps models.ProductSize
	err := orm.DB().
		Model(&models.ProductSize{}).
		Where("product_id = ? AND size = ?", productID, size).
		First(&ps)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ps = models.ProductSize{ProductID: productID, Size: size, Quantity: quantity}
		return orm.DB().Create(&ps)
	}
	if err != nil {
		return err
	}
	ps.Quantity = quantity
	return orm.DB().Save(&ps)
}

// CountByCategory reports how many products reference the category.
func (r *ProductRepository) CountByCategory(categoryID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n)
	return n, err
}

// CountByBrand reports how many products reference the brand.
func (r *ProductRepository) CountByBrand(brandID uint) (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&n)
	return n, err
}
