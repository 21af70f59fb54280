package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/response"
	"github.com/rrboots/storefront/pkg/slug"
	"github.com/rrboots/storefront/pkg/validate"
)

type brandInput struct {
	Name    string `json:"name"     validate:"required,max=255"`
	LogoURL string `json:"logo_url" validate:"nullable,url"`
	SiteURL string `json:"site_url" validate:"nullable,url"`
}

// BrandController handles admin brand CRUD.
type BrandController struct {
	brands *repositories.BrandRepository
}

func NewBrandController() *BrandController {
	return &BrandController{brands: repositories.NewBrandRepository()}
}

// Index lists all brands.
func (c *BrandController) Index(w http.ResponseWriter, r *http.Request) {
	brands, err := c.brands.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load brands")
		return
	}
	response.Success(w, brands)
}

// Store creates a brand; the slug is derived from the name.
func (c *BrandController) Store(w http.ResponseWriter, r *http.Request) {
	input, ok := c.decode(w, r)
	if !ok {
		return
	}

	brand := models.Brand{
		Name:    input.Name,
		Slug:    slug.Make(input.Name),
		LogoURL: input.LogoURL,
		SiteURL: input.SiteURL,
	}
	if err := c.brands.Create(&brand); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create brand")
		return
	}

	services.InvalidateCatalogCache()
	response.Created(w, brand)
}

// Update renames a brand and rederives its slug.
func (c *BrandController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	brand, err := c.brands.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load brand")
		return
	}

	input, ok := c.decode(w, r)
	if !ok {
		return
	}

	brand.Name = input.Name
	brand.Slug = slug.Make(input.Name)
	brand.LogoURL = input.LogoURL
	brand.SiteURL = input.SiteURL
	if err := c.brands.Update(&brand); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update brand")
		return
	}

	services.InvalidateCatalogCache()
	response.Success(w, brand)
}

// Destroy deletes a brand unless products still reference it.
func (c *BrandController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := c.brands.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrBrandInUse) {
			response.Error(w, http.StatusConflict, "brand still has products")
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not delete brand")
		return
	}

	services.InvalidateCatalogCache()
	response.Success(w, map[string]interface{}{"deleted": true})
}

func (c *BrandController) decode(w http.ResponseWriter, r *http.Request) (brandInput, bool) {
	var input brandInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return input, false
	}
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return input, false
	}
	return input, true
}
