package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/geniusdatahub/gdh_api/internal/models"
)

const (
	bundlesKey    = "catalog:bundles"
	categoriesKey = "catalog:categories"
)

// CatalogCache caches the bundle catalog and derived categories in Redis.
// The catalog file changes rarely, so a short TTL keeps reads cheap without a
// stale window anyone would notice. A nil CatalogCache is a no-op, so the
// service layer works unchanged when Redis is not configured.
type CatalogCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCatalogCache creates a CatalogCache with the given TTL.
func NewCatalogCache(redis *RedisClient, ttl time.Duration) *CatalogCache {
	return &CatalogCache{redis: redis, ttl: ttl}
}

// GetBundles returns the cached bundle list, or nil on miss.
func (c *CatalogCache) GetBundles(ctx context.Context) []models.Bundle {
	if c == nil {
		return nil
	}
	raw, err := c.redis.Get(ctx, bundlesKey)
	if err != nil {
		return nil
	}
	var bundles []models.Bundle
	if err := json.Unmarshal([]byte(raw), &bundles); err != nil {
		return nil
	}
	return bundles
}

// SetBundles stores the bundle list. Failures are ignored; the cache is an
// optimization, not a source of truth.
func (c *CatalogCache) SetBundles(ctx context.Context, bundles []models.Bundle) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(bundles)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, bundlesKey, string(raw), c.ttl)
}

// GetCategories returns the cached category list, or nil on miss.
func (c *CatalogCache) GetCategories(ctx context.Context) []models.Category {
	if c == nil {
		return nil
	}
	raw, err := c.redis.Get(ctx, categoriesKey)
	if err != nil {
		return nil
	}
	var cats []models.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil
	}
	return cats
}

// SetCategories stores the category list.
func (c *CatalogCache) SetCategories(ctx context.Context, cats []models.Category) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(cats)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, categoriesKey, string(raw), c.ttl)
}
