package repositories

import (
	"errors"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/orm"
	"gorm.io/gorm"
)

// ErrCategoryInUse is returned when deleting a category that still has
// products assigned to it.
var ErrCategoryInUse = errors.New("category has products assigned")

// CategoryRepository handles database operations for Category and CategorySize.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category with its size labels in display order.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("category_sizes.position ASC")
		}).
		Order("name ASC").
		Get(&categories)
	return categories, err
}

// FindByID loads one category with its ordered size labels.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("category_sizes.position ASC")
		}).
		Where("id = ?", id).
		First(&category)
	return category, err
}

// FindBySlug loads one category by its slug.
func (r *CategoryRepository) FindBySlug(slug string) (models.Category, error) {
	var category models.Category
	err := orm.DB().
		Model(&models.Category{}).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("category_sizes.position ASC")
		}).
		Where("slug = ?", slug).
		First(&category)
	return category, err
}

// Create persists a new category and its size labels.
func (r *CategoryRepository) Create(category *models.Category) error {
	return orm.DB().Create(category)
}

// Update saves category fields without touching its size rows.
func (r *CategoryRepository) Update(category *models.Category) error {
	return orm.DB().Gorm().Omit("Sizes").Save(category).Error
}

// ReplaceSizes swaps the category's size labels for the given ordered list
// in one transaction. Position follows slice order.
func (r *CategoryRepository) ReplaceSizes(categoryID uint, labels []string) error {
	return orm.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).
			Delete(&models.CategorySize{}).Error; err != nil {
			return err
		}
		for i, label := range labels {
			cs := models.CategorySize{CategoryID: categoryID, Label: label, Position: i}
			if err := tx.Create(&cs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a category and its size labels. Categories that still
// have products fail with ErrCategoryInUse.
func (r *CategoryRepository) Delete(id uint) error {
	var n int64
	if err := orm.DB().Model(&models.Product{}).Where("category_id = ?", id).Count(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}

	return orm.DB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.CategorySize{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}
