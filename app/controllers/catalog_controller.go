package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/response"
)

// CatalogController serves the public storefront reads. Everything here is
// unauthenticated and cacheable.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{catalog: services.NewCatalogService()}
}

// Products lists products, newest first, honoring the storefront filters:
// ?size= keeps sizes with positive stock, ?category= matches the category
// slug, ?gender= and ?brand= narrow further. Filters combine with AND.
func (c *CatalogController) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		Size:         q.Get("size"),
		CategorySlug: q.Get("category"),
		Gender:       q.Get("gender"),
	}
	if raw := q.Get("brand"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "brand must be a numeric id")
			return
		}
		filter.BrandID = uint(id)
	}

	products, err := c.catalog.Products(filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}
	response.Success(w, products)
}

// Product returns one product page.
func (c *CatalogController) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	product, err := c.catalog.Product(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}
	response.Success(w, product)
}

// Categories lists all categories with their size labels in display order.
func (c *CatalogController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.catalog.Categories()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load categories")
		return
	}
	response.Success(w, categories)
}

// Brands lists all brands.
func (c *CatalogController) Brands(w http.ResponseWriter, r *http.Request) {
	brands, err := c.catalog.Brands()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load brands")
		return
	}
	response.Success(w, brands)
}
