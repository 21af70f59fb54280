package services_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/services"
)

func testSale() models.Sale {
	sale := models.Sale{
		CustomerName: "Ana",
		Total:        decimal.NewFromFloat(279.40),
		Items: []models.SaleItem{
			{ProductName: "Classic Boot", Size: "42", Quantity: 2, UnitPrice: decimal.NewFromFloat(129.90)},
			{ProductName: "Wool Socks", Size: "M", Quantity: 1, UnitPrice: decimal.NewFromFloat(19.60)},
		},
	}
	sale.ID = 7
	return sale
}

func TestOrderMessage(t *testing.T) {
	msg := services.OrderMessage(testSale())

	assert.Contains(t, msg, "order #7")
	assert.Contains(t, msg, "Classic Boot (size 42) x2: $259.80")
	assert.Contains(t, msg, "Wool Socks (size M) x1: $19.60")
	assert.Contains(t, msg, "Total: $279.40")
	assert.Contains(t, msg, "Name: Ana")
}

func TestOrderMessageWithoutName(t *testing.T) {
	sale := testSale()
	sale.CustomerName = ""
	assert.NotContains(t, services.OrderMessage(sale), "Name:")
}

func TestWhatsAppLink(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.SiteConfig{
		StoreName:         "RR Boots",
		WhatsAppNumber:    "+1 (555) 010-0000",
		AdminPasswordHash: "x",
	}).Error)

	link, err := services.NewCheckoutService().WhatsAppLink(testSale())
	require.NoError(t, err)

	// Number sanitized to digits only, message urlencoded in ?text=.
	assert.True(t, strings.HasPrefix(link, "https://wa.me/15550100000?text="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Classic Boot (size 42) x2")
	assert.Contains(t, text, "Total: $279.40")
}

func TestWhatsAppLinkNoNumber(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.SiteConfig{
		StoreName:         "RR Boots",
		AdminPasswordHash: "x",
	}).Error)

	_, err := services.NewCheckoutService().WhatsAppLink(testSale())
	require.Error(t, err)
}
