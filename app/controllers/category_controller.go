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

type categoryInput struct {
	Name  string   `json:"name"  validate:"required,max=255"`
	Sizes []string `json:"sizes"`
}

// CategoryController handles admin category CRUD, including the ordered
// size label list each category carries.
type CategoryController struct {
	categories *repositories.CategoryRepository
}

func NewCategoryController() *CategoryController {
	return &CategoryController{categories: repositories.NewCategoryRepository()}
}

// Index lists all categories with their ordered size labels.
func (c *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load categories")
		return
	}
	response.Success(w, categories)
}

// Show returns one category.
func (c *CategoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	category, err := c.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load category")
		return
	}
	response.Success(w, category)
}

// Store creates a category; the slug is derived from the name.
func (c *CategoryController) Store(w http.ResponseWriter, r *http.Request) {
	input, ok := c.decode(w, r)
	if !ok {
		return
	}

	category := models.Category{Name: input.Name, Slug: slug.Make(input.Name)}
	for i, label := range input.Sizes {
		category.Sizes = append(category.Sizes, models.CategorySize{Label: label, Position: i})
	}

	if err := c.categories.Create(&category); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create category")
		return
	}

	services.InvalidateCatalogCache()
	response.Created(w, category)
}

// Update renames a category and replaces its size labels in order.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	category, err := c.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not load category")
		return
	}

	input, ok := c.decode(w, r)
	if !ok {
		return
	}

	category.Name = input.Name
	category.Slug = slug.Make(input.Name)
	if err := c.categories.Update(&category); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update category")
		return
	}
	if err := c.categories.ReplaceSizes(category.ID, input.Sizes); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update category sizes")
		return
	}

	services.InvalidateCatalogCache()
	updated, _ := c.categories.FindByID(category.ID)
	response.Success(w, updated)
}

// Destroy deletes a category unless products still reference it.
func (c *CategoryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := c.categories.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrCategoryInUse) {
			response.Error(w, http.StatusConflict, "category still has products")
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not delete category")
		return
	}

	services.InvalidateCatalogCache()
	response.Success(w, map[string]interface{}{"deleted": true})
}

func (c *CategoryController) decode(w http.ResponseWriter, r *http.Request) (categoryInput, bool) {
	var input categoryInput
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
