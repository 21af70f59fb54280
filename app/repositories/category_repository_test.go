package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
)

func TestCategorySizesKeepOrder(t *testing.T) {
	db := setupDB(t)

	category := models.Category{Name: "Boots", Slug: "boots"}
	for i, label := range []string{"44", "38", "41"} {
		category.Sizes = append(category.Sizes, models.CategorySize{Label: label, Position: i})
	}
	require.NoError(t, db.Create(&category).Error)

	repo := repositories.NewCategoryRepository()
	got, err := repo.FindByID(category.ID)
	require.NoError(t, err)

	labels := make([]string, 0, len(got.Sizes))
	for _, s := range got.Sizes {
		labels = append(labels, s.Label)
	}
	// Admin-defined order, not sorted.
	assert.Equal(t, []string{"44", "38", "41"}, labels)
}

func TestReplaceSizes(t *testing.T) {
	db := setupDB(t)

	category := models.Category{Name: "Apparel", Slug: "apparel",
		Sizes: []models.CategorySize{{Label: "S", Position: 0}, {Label: "M", Position: 1}}}
	require.NoError(t, db.Create(&category).Error)

	repo := repositories.NewCategoryRepository()
	require.NoError(t, repo.ReplaceSizes(category.ID, []string{"XL", "L", "M"}))

	got, err := repo.FindByID(category.ID)
	require.NoError(t, err)

	labels := make([]string, 0, len(got.Sizes))
	for _, s := range got.Sizes {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"XL", "L", "M"}, labels)
}

func TestDeleteCategoryBlockedWhileInUse(t *testing.T) {
	db := setupDB(t)
	f := newFixtures(t, db)
	f.product(t, "Boot", models.GenderUnisex, nil)

	repo := repositories.NewCategoryRepository()
	err := repo.Delete(f.category.ID)
	assert.ErrorIs(t, err, repositories.ErrCategoryInUse)

	// Still there.
	_, err = repo.FindByID(f.category.ID)
	assert.NoError(t, err)
}

func TestDeleteEmptyCategoryCleansSizes(t *testing.T) {
	db := setupDB(t)

	category := models.Category{Name: "Empty", Slug: "empty",
		Sizes: []models.CategorySize{{Label: "S"}}}
	require.NoError(t, db.Create(&category).Error)

	repo := repositories.NewCategoryRepository()
	require.NoError(t, repo.Delete(category.ID))

	var n int64
	require.NoError(t, db.Model(&models.CategorySize{}).
		Where("category_id = ?", category.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeleteBrandBlockedWhileInUse(t *testing.T) {
	db := setupDB(t)
	f := newFixtures(t, db)
	f.product(t, "Boot", models.GenderUnisex, nil)

	repo := repositories.NewBrandRepository()
	err := repo.Delete(f.brand.ID)
	assert.ErrorIs(t, err, repositories.ErrBrandInUse)
}

func TestBrandKeepsOptionalURLs(t *testing.T) {
	setupDB(t)

	repo := repositories.NewBrandRepository()
	brand := models.Brand{
		Name:    "Tierra Alta",
		Slug:    "tierra-alta",
		LogoURL: "https://cdn.example.com/tierra.png",
		SiteURL: "https://tierraalta.example.com",
	}
	require.NoError(t, repo.Create(&brand))

	got, err := repo.FindByID(brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/tierra.png", got.LogoURL)
	assert.Equal(t, "https://tierraalta.example.com", got.SiteURL)
}

func TestSalesListPaginatesNewestFirst(t *testing.T) {
	db := setupDB(t)

	for i := 0; i < 25; i++ {
		require.NoError(t, db.Create(&models.Sale{
			Items: []models.SaleItem{{ProductName: "Boot", Size: "42", Quantity: 1}},
		}).Error)
	}

	repo := repositories.NewSaleRepository()

	// Defaults: page 1, limit 20.
	sales, pagination, err := repo.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, sales, 20)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.Limit)
	assert.EqualValues(t, 25, pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	assert.NotEmpty(t, sales[0].Items, "items preloaded")

	sales, _, err = repo.List(2, 20)
	require.NoError(t, err)
	assert.Len(t, sales, 5)
}
