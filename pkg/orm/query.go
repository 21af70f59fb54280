// Package orm is a thin fluent wrapper over the shared gorm.DB handle.
// Repositories use it instead of touching database.DB directly; that keeps
// list caching and pagination in one place.
package orm

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/rrboots/storefront/pkg/database"
)

// Cacher is satisfied by pkg/cache; the bridge is wired at boot so orm and
// cache do not import each other.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is assigned once during server startup.
var CacheStore Cacher

type Query struct {
	db *gorm.DB
}

// DB returns a Query rooted at the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Use wraps an explicit *gorm.DB (a transaction handle, or a test database).
func Use(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for the rare call the wrapper
// does not cover.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Preload(relation string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(relation, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

func (q *Query) Distinct(args ...interface{}) *Query {
	return &Query{db: q.db.Distinct(args...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}, conds ...interface{}) error {
	return q.db.Delete(v, conds...).Error
}

// Transaction runs fn inside a database transaction; any returned error
// rolls the whole transaction back.
func (q *Query) Transaction(fn func(tx *gorm.DB) error) error {
	return q.db.Transaction(fn)
}

// Cache reads dest from the cache under key, falling back to the database
// and populating the cache on a miss. A nil CacheStore degrades to a plain
// query.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}

// ── Pagination ───────────────────────────────────────────────────────────────

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// GetWithPagination fills dest with one page of results and returns the
// pagination metadata. Page numbers start at 1.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	err := q.db.
		Offset((page - 1) * limit).
		Limit(limit).
		Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
