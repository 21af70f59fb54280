package repositories

import (
	"github.com/rrboots/storefront/app/models"
	"github.com/rrboots/storefront/pkg/orm"
)

// SiteConfigRepository handles the singleton settings row.
type SiteConfigRepository struct{}

func NewSiteConfigRepository() *SiteConfigRepository {
	return &SiteConfigRepository{}
}

// Get returns the settings row. gorm.ErrRecordNotFound means the row has
// not been seeded yet.
func (r *SiteConfigRepository) Get() (models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := orm.DB().Model(&models.SiteConfig{}).Order("id ASC").First(&cfg)
	return cfg, err
}

// Save persists changes to the settings row.
func (r *SiteConfigRepository) Save(cfg *models.SiteConfig) error {
	return orm.DB().Save(cfg)
}
