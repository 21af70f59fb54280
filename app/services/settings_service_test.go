package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/database/seeders"
	"github.com/rrboots/storefront/pkg/auth"
)

func TestSeedCreatesRowOnce(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSettingsService()

	require.NoError(t, seeders.SeedSiteConfig(db))

	cfg, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "RR Boots", cfg.StoreName)
	assert.True(t, auth.CheckPassword(cfg.AdminPasswordHash, "admin123"))
	assert.False(t, auth.CheckPassword(cfg.AdminPasswordHash, "wrong"))

	// Seeding again must not reset an existing row.
	require.NoError(t, svc.ChangePassword("admin123", "rotated-pass"))
	require.NoError(t, seeders.SeedSiteConfig(db))

	var n int64
	require.NoError(t, db.Model(&models.SiteConfig{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	cfg, err = svc.Get()
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(cfg.AdminPasswordHash, "rotated-pass"))
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSettingsService()
	require.NoError(t, seeders.SeedSiteConfig(db))

	err := svc.ChangePassword("nope", "whatever-new")
	assert.ErrorIs(t, err, services.ErrWrongPassword)

	ok, err := svc.CheckPassword("admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateKeepsPasswordHash(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSettingsService()
	require.NoError(t, seeders.SeedSiteConfig(db))

	cfg, err := svc.Update(services.SettingsUpdate{
		StoreName:      "New Name",
		Description:    "Handmade leather boots.",
		WhatsAppNumber: "+15550199999",
		Announcement:   "Winter sale!",
		FooterText:     "Open Mon-Sat",
		LogoURL:        "https://cdn.example.com/logo.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", cfg.StoreName)
	assert.Equal(t, "Handmade leather boots.", cfg.Description)
	assert.Equal(t, "+15550199999", cfg.WhatsAppNumber)
	assert.Equal(t, "Winter sale!", cfg.Announcement)
	assert.Equal(t, "Open Mon-Sat", cfg.FooterText)
	assert.Equal(t, "https://cdn.example.com/logo.png", cfg.LogoURL)

	ok, err := svc.CheckPassword("admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateClearsFreeTextFields(t *testing.T) {
	db := setupDB(t)
	svc := services.NewSettingsService()
	require.NoError(t, seeders.SeedSiteConfig(db))

	_, err := svc.Update(services.SettingsUpdate{Announcement: "Sale!"})
	require.NoError(t, err)

	// Empty name/number keep their value, empty free text clears.
	cfg, err := svc.Update(services.SettingsUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "RR Boots", cfg.StoreName)
	assert.NotEmpty(t, cfg.WhatsAppNumber)
	assert.Empty(t, cfg.Announcement)
}
