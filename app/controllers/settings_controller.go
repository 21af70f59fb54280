package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/response"
	"github.com/rrboots/storefront/pkg/validate"
)

type settingsInput struct {
	StoreName      string `json:"store_name"      validate:"nullable,max=255"`
	Description    string `json:"description"     validate:"nullable"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"nullable,phone"`
	Announcement   string `json:"announcement"    validate:"nullable"`
	FooterText     string `json:"footer_text"     validate:"nullable"`
	LogoURL        string `json:"logo_url"        validate:"nullable,url"`
}

type passwordInput struct {
	Current string `json:"current" validate:"required"`
	Next    string `json:"next"    validate:"required,min=8"`
}

// SettingsController exposes the singleton site configuration to the
// back-office.
type SettingsController struct {
	settings *services.SettingsService
}

func NewSettingsController() *SettingsController {
	return &SettingsController{settings: services.NewSettingsService()}
}

// Show returns the current settings. The password hash never serializes.
func (c *SettingsController) Show(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.settings.Get()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	response.Success(w, cfg)
}

// Site returns the public subset of the settings for the storefront.
func (c *SettingsController) Site(w http.ResponseWriter, r *http.Request) {
	cfg, err := c.settings.Get()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load settings")
		return
	}
	response.Success(w, map[string]interface{}{
		"store_name":      cfg.StoreName,
		"description":     cfg.Description,
		"whatsapp_number": cfg.WhatsAppNumber,
		"announcement":    cfg.Announcement,
		"footer_text":     cfg.FooterText,
		"logo_url":        cfg.LogoURL,
	})
}

// Update saves the public settings fields.
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var input settingsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	cfg, err := c.settings.Update(services.SettingsUpdate{
		StoreName:      input.StoreName,
		Description:    input.Description,
		WhatsAppNumber: input.WhatsAppNumber,
		Announcement:   input.Announcement,
		FooterText:     input.FooterText,
		LogoURL:        input.LogoURL,
	})
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not save settings")
		return
	}
	response.Success(w, cfg)
}

// ChangePassword rotates the admin password.
func (c *SettingsController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input passwordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if err := c.settings.ChangePassword(input.Current, input.Next); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			response.Error(w, http.StatusUnauthorized, "current password does not match")
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not change password")
		return
	}
	response.Success(w, map[string]interface{}{"changed": true})
}
