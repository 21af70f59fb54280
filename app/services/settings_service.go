package services

import (
	"errors"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/pkg/auth"
)

// ErrWrongPassword is returned by ChangePassword when the current password
// does not match.
var ErrWrongPassword = errors.New("current password does not match")

// SettingsService manages the singleton site configuration.
type SettingsService struct {
	config *repositories.SiteConfigRepository
}

func NewSettingsService() *SettingsService {
	return &SettingsService{config: repositories.NewSiteConfigRepository()}
}

// Get returns the current settings.
func (s *SettingsService) Get() (models.SiteConfig, error) {
	return s.config.Get()
}

// SettingsUpdate carries the editable settings fields. StoreName and
// WhatsAppNumber keep their current value when left empty; the free-text
// fields are written as given so they can be cleared.
type SettingsUpdate struct {
	StoreName      string
	Description    string
	WhatsAppNumber string
	Announcement   string
	FooterText     string
	LogoURL        string
}

// Update saves the public-facing settings fields. The password hash is
// only changed through ChangePassword.
func (s *SettingsService) Update(in SettingsUpdate) (models.SiteConfig, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return models.SiteConfig{}, err
	}

	if in.StoreName != "" {
		cfg.StoreName = in.StoreName
	}
	if in.WhatsAppNumber != "" {
		cfg.WhatsAppNumber = in.WhatsAppNumber
	}
	cfg.Description = in.Description
	cfg.Announcement = in.Announcement
	cfg.FooterText = in.FooterText
	cfg.LogoURL = in.LogoURL

	if err := s.config.Save(&cfg); err != nil {
		return models.SiteConfig{}, err
	}
	InvalidateCatalogCache()
	return cfg, nil
}

// CheckPassword verifies a login attempt against the stored hash.
func (s *SettingsService) CheckPassword(password string) (bool, error) {
	cfg, err := s.config.Get()
	if err != nil {
		return false, err
	}
	return auth.CheckPassword(cfg.AdminPasswordHash, password), nil
}

// ChangePassword rotates the admin password after verifying the current one.
func (s *SettingsService) ChangePassword(current, next string) error {
	cfg, err := s.config.Get()
	if err != nil {
		return err
	}
	if !auth.CheckPassword(cfg.AdminPasswordHash, current) {
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	cfg.AdminPasswordHash = hash
	return s.config.Save(&cfg)
}
