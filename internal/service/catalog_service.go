package service

import (
	"context"
	"strings"

	"github.com/geniusdatahub/gdh_api/internal/cache"
	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/repository"
)

// categoryConfig is the fixed presentation table for known networks. Unknown
// networks fall back to a generic entry derived from the network name.
var categoryConfig = map[string]models.Category{
	"MTN":     {Slug: "mtn", Label: "MTN Data Bundle", Badge: "BEST SELLING", Icon: "📱"},
	"Telecel": {Slug: "telecel", Label: "Telecel Data", Badge: "FAST DELIVERY", Icon: "📱"},
	"AT":      {Slug: "at", Label: "AT Data Bundle", Badge: "FAST DELIVERY", Icon: "📱"},
	"AFA":     {Slug: "afa", Label: "AFA Bundle", Badge: "AFA", Icon: "📱"},
}

// CatalogService serves the bundle catalog and its derived categories.
type CatalogService struct {
	bundleRepo *repository.BundleRepository
	cache      *cache.CatalogCache
}

// NewCatalogService constructs a CatalogService. cache may be nil.
func NewCatalogService(bundleRepo *repository.BundleRepository, catalogCache *cache.CatalogCache) *CatalogService {
	return &CatalogService{bundleRepo: bundleRepo, cache: catalogCache}
}

// GetBundles returns the catalog, filtered by network when network is
// non-empty. The network match is case-insensitive; an unmatched network
// yields an empty list, not an error.
func (s *CatalogService) GetBundles(ctx context.Context, network string) ([]models.Bundle, error) {
	bundles := s.cache.GetBundles(ctx)
	if bundles == nil {
		var err error
		bundles, err = s.bundleRepo.GetAll()
		if err != nil {
			return nil, err
		}
		s.cache.SetBundles(ctx, bundles)
	}

	if network == "" {
		return bundles, nil
	}
	filtered := make([]models.Bundle, 0, len(bundles))
	for _, b := range bundles {
		if strings.EqualFold(b.Network, network) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// GetBundle returns one bundle by ID, or nil when absent. A cached catalog is
// scanned in memory; otherwise the lookup goes to the repository.
func (s *CatalogService) GetBundle(ctx context.Context, id string) (*models.Bundle, error) {
	if bundles := s.cache.GetBundles(ctx); bundles != nil {
		for i := range bundles {
			if bundles[i].ID == id {
				return &bundles[i], nil
			}
		}
		return nil, nil
	}
	return s.bundleRepo.GetByID(id)
}

// GetCategories derives one category per distinct network in the catalog,
// preserving first-seen order.
func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	if cats := s.cache.GetCategories(ctx); cats != nil {
		return cats, nil
	}

	bundles, err := s.GetBundles(ctx, "")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	cats := make([]models.Category, 0, len(categoryConfig))
	for _, b := range bundles {
		if seen[b.Network] {
			continue
		}
		seen[b.Network] = true

		cat, ok := categoryConfig[b.Network]
		if !ok {
			cat = models.Category{
				Slug:  strings.ToLower(b.Network),
				Label: b.Network,
				Icon:  "📱",
			}
		}
		cat.Network = b.Network
		cats = append(cats, cat)
	}

	s.cache.SetCategories(ctx, cats)
	return cats, nil
}
