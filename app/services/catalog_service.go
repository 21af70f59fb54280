package services

import (
	"time"

	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/app/repositories"
	"github.com/rrboots/storefront/pkg/cache"
	"github.com/rrboots/storefront/pkg/event"
	"github.com/rrboots/storefront/pkg/metrics"
	"github.com/rrboots/storefront/pkg/orm"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService serves the public storefront reads. Unfiltered listings
// are cached in Redis; any write to the catalogue or a completed sale
// invalidates the cache.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	brands     *repositories.BrandRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
		brands:     repositories.NewBrandRepository(),
	}
}

// Products returns the filtered product listing, newest first. Only the
// unfiltered listing goes through the cache; filter combinations are too
// sparse to be worth caching.
func (s *CatalogService) Products(f repositories.ProductFilter) ([]models.Product, error) {
	if f == (repositories.ProductFilter{}) {
		var products []models.Product
		key := "catalog:products"
		if cache.Get(key, &products) {
			metrics.CacheHits.Inc()
			return products, nil
		}
		metrics.CacheMisses.Inc()

		products, err := s.products.List(f)
		if err != nil {
			return nil, err
		}
		_ = cache.Set(key, products, catalogCacheTTL)
		return products, nil
	}

	return s.products.List(f)
}

// Product returns one product with sizes, category and brand.
func (s *CatalogService) Product(id uint) (models.Product, error) {
	return s.products.FindByID(id)
}

// Categories returns all categories with ordered size labels, cached.
func (s *CatalogService) Categories() ([]models.Category, error) {
	var categories []models.Category
	key := "catalog:categories"
	if cache.Get(key, &categories) {
		metrics.CacheHits.Inc()
		return categories, nil
	}
	metrics.CacheMisses.Inc()

	categories, err := s.categories.All()
	if err != nil {
		return nil, err
	}
	_ = cache.Set(key, categories, catalogCacheTTL)
	return categories, nil
}

// Brands returns all brands, cached.
func (s *CatalogService) Brands() ([]models.Brand, error) {
	var brands []models.Brand
	key := "catalog:brands"
	if cache.Get(key, &brands) {
		metrics.CacheHits.Inc()
		return brands, nil
	}
	metrics.CacheMisses.Inc()

	brands, err := s.brands.All()
	if err != nil {
		return nil, err
	}
	_ = cache.Set(key, brands, catalogCacheTTL)
	return brands, nil
}

// InvalidateCatalogCache drops every cached catalogue listing.
func InvalidateCatalogCache() {
	_ = cache.Del("catalog:products", "catalog:categories", "catalog:brands")
}

// RegisterCacheInvalidation hooks catalogue invalidation onto completed
// sales; stock levels shown on the storefront must reflect the decrement.
func RegisterCacheInvalidation() {
	event.Listen(EventSaleCompleted, func(payload interface{}) {
		InvalidateCatalogCache()
	})
}

// cacheBridge adapts pkg/cache to orm.Cacher so repository-level Cache()
// calls work without an import cycle.
type cacheBridge struct{}

func (cacheBridge) Get(key string, dest interface{}) bool { return cache.Get(key, dest) }
func (cacheBridge) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}

// WireCache installs the cache bridge into the orm layer. Called once at boot.
func WireCache() {
	orm.CacheStore = cacheBridge{}
}
