package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/controllers"
	"github.com/rrboots/storefront/app/models"
)

func seedCheckoutProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()

	brand := models.Brand{Name: "Ranger", Slug: "ranger"}
	require.NoError(t, db.Create(&brand).Error)
	category := models.Category{Name: "Boots", Slug: "boots"}
	require.NoError(t, db.Create(&category).Error)

	p := models.Product{
		Name:       "Classic Boot",
		Price:      decimal.NewFromFloat(129.90),
		Gender:     models.GenderUnisex,
		BrandID:    brand.ID,
		CategoryID: category.ID,
		Sizes:      []models.ProductSize{{Size: "42", Quantity: 3}},
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func postCheckout(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	controllers.NewSaleController().Checkout(rec, req)
	return rec
}

func TestCheckoutRejectsMalformedPhone(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")
	p := seedCheckoutProduct(t, db)

	rec := postCheckout(t, `{
		"customer_phone": "not-a-phone",
		"items": [{"product_id": `+itoa(p.ID)+`, "size": "42", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer_phone")

	// Nothing was sold.
	var ps models.ProductSize
	require.NoError(t, db.Where("product_id = ?", p.ID).First(&ps).Error)
	assert.Equal(t, 3, ps.Quantity)
}

func TestCheckoutRejectsMalformedEmail(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")
	p := seedCheckoutProduct(t, db)

	rec := postCheckout(t, `{
		"customer_email": "not-an-email",
		"items": [{"product_id": `+itoa(p.ID)+`, "size": "42", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer_email")
}

func TestCheckoutAcceptsOptionalCustomerFields(t *testing.T) {
	db := setupDB(t)
	seedConfig(t, db, "admin123")
	p := seedCheckoutProduct(t, db)

	rec := postCheckout(t, `{
		"customer_name": "Ana",
		"customer_email": "ana@example.com",
		"customer_phone": "+1 555 010 0000",
		"items": [{"product_id": `+itoa(p.ID)+`, "size": "42", "quantity": 2}]
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var payload struct {
		Data struct {
			Sale        models.Sale `json:"sale"`
			WhatsAppURL string      `json:"whatsapp_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ana@example.com", payload.Data.Sale.CustomerEmail)
	assert.Equal(t, models.SaleStatusCompleted, payload.Data.Sale.Status)
	assert.Contains(t, payload.Data.WhatsAppURL, "wa.me/")
}
