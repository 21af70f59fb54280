package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/app/services"
	"github.com/rrboots/storefront/pkg/response"
	"github.com/rrboots/storefront/pkg/validate"
)

// productInput is the admin create/update payload.
type productInput struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"nullable"`
	Price       string `json:"price"       validate:"required,numeric"`
	ImageURL    string `json:"image_url"   validate:"nullable,url"`
	Gender      string `json:"gender"      validate:"required,in=male,female,unisex"`
	CategoryID  uint   `json:"category_id" validate:"required"`
	BrandID     uint   `json:"brand_id"    validate:"required"`

	Sizes []struct {
		Size     string `json:"size"`
		Quantity int    `json:"quantity"`
	} `json:"sizes"`
}

// ProductController handles admin product CRUD.
type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController() *ProductController {
	return &ProductController{products: repositories.NewProductRepository()}
}

// Index lists all products for the back-office, unfiltered, newest first.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.List(repositories.ProductFilter{})
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load products")
		return
	}
	response.Success(w, products)
}

// Show returns one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	product, err := c.products.FindByID(id)
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

// Store creates a product with its size rows.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	input, product, ok := c.decode(w, r)
	if !ok {
		return
	}

	for _, s := range input.Sizes {
		if s.Quantity < 0 {
			response.Error(w, http.StatusUnprocessableEntity, "size quantity cannot be negative")
			return
		}
		product.Sizes = append(product.Sizes, models.ProductSize{
			Size:     s.Size,
			Quantity: s.Quantity,
		})
	}

	if err := c.products.Create(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}

	services.InvalidateCatalogCache()
	response.Created(w, product)
}

// Update saves product fields and replaces the size rows.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	existing, err := c.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}

	input, updated, ok := c.decode(w, r)
	if !ok {
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	var sizes []models.ProductSize
	for _, s := range input.Sizes {
		if s.Quantity < 0 {
			response.Error(w, http.StatusUnprocessableEntity, "size quantity cannot be negative")
			return
		}
		sizes = append(sizes, models.ProductSize{Size: s.Size, Quantity: s.Quantity})
	}

	if err := c.products.Update(&updated, sizes); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}

	services.InvalidateCatalogCache()
	product, _ := c.products.FindByID(updated.ID)
	response.Success(w, product)
}

// stockInput adjusts one size row of a product.
type stockInput struct {
	Size     string `json:"size"     validate:"required,max=20"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// Stock sets the quantity of a single product size, creating the row when
// the size is new.
func (c *ProductController) Stock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if _, err := c.products.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}

	var input stockInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Struct(input); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	if err := c.products.SetQuantity(id, input.Size, input.Quantity); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update stock")
		return
	}

	services.InvalidateCatalogCache()
	product, _ := c.products.FindByID(id)
	response.Success(w, product)
}

// Destroy deletes a product and its sizes.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := c.products.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete product")
		return
	}

	services.InvalidateCatalogCache()
	response.Success(w, map[string]interface{}{"deleted": true})
}

// decode parses and validates the request body into a product model.
func (c *ProductController) decode(w http.ResponseWriter, r *http.Request) (productInput, models.Product, bool) {
	var input productInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return input, models.Product{}, false
	}

	if errs := validate.Struct(input); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return input, models.Product{}, false
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		response.Error(w, http.StatusUnprocessableEntity, "price must be a non-negative number")
		return input, models.Product{}, false
	}

	return input, models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		ImageURL:    input.ImageURL,
		Gender:      input.Gender,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
	}, true
}

// idParam parses the {id} route parameter, writing a 404 on garbage.
func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.NotFound(w)
		return 0, false
	}
	return uint(id), true
}
