package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/geniusdatahub/gdh_api/internal/models"
)

// BundleRepository reads the bundle catalog. The catalog is immutable
// reference data in a flat JSON file; there is no write path.
type BundleRepository struct {
	path string
}

// NewBundleRepository creates a catalog reader for the given bundles file.
func NewBundleRepository(path string) *BundleRepository {
	return &BundleRepository{path: path}
}

// GetAll returns every bundle in the catalog. Missing expiry fields are
// defaulted (expires=false, "No expiry") so callers always see a complete
// record.
func (r *BundleRepository) GetAll() ([]models.Bundle, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read bundle catalog: %w", err)
	}

	var raw []struct {
		models.Bundle
		Expires    *bool   `json:"expires"`
		ExpiryNote *string `json:"expiry_note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bundle catalog: %w", err)
	}

	bundles := make([]models.Bundle, 0, len(raw))
	for _, b := range raw {
		bundle := b.Bundle
		bundle.Expires = b.Expires != nil && *b.Expires
		if b.ExpiryNote != nil {
			bundle.ExpiryNote = *b.ExpiryNote
		} else {
			bundle.ExpiryNote = "No expiry"
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

// GetByID returns the bundle with the given ID, or nil if absent.
func (r *BundleRepository) GetByID(id string) (*models.Bundle, error) {
	bundles, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range bundles {
		if bundles[i].ID == id {
			return &bundles[i], nil
		}
	}
	return nil, nil
}
