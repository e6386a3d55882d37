package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/geniusdatahub/gdh_api/internal/repository"
)

const testCatalog = `[
  {"id": "mtn-1gb", "title": "MTN 1GB", "network": "MTN", "price": 6.0, "sizeMB": 1024},
  {"id": "mtn-2gb", "title": "MTN 2GB", "network": "MTN", "price": 12.0, "sizeMB": 2048, "expires": true, "expiry_note": "Expires in 30 days"},
  {"id": "telecel-5gb", "title": "Telecel 5GB", "network": "Telecel", "price": 25.0, "sizeMB": 5120},
  {"id": "afa-reg", "title": "AFA Registration", "network": "AFA", "price": 8.0}
]`

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundles.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewCatalogService(repository.NewBundleRepository(path), nil)
}

func TestGetBundlesFiltersByNetwork(t *testing.T) {
	svc := newCatalogService(t)
	ctx := context.Background()

	all, err := svc.GetBundles(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d bundles, want 4", len(all))
	}

	mtn, err := svc.GetBundles(ctx, "mtn")
	if err != nil {
		t.Fatal(err)
	}
	if len(mtn) != 2 {
		t.Fatalf("got %d MTN bundles, want 2 (filter should be case-insensitive)", len(mtn))
	}

	none, err := svc.GetBundles(ctx, "Vodafone")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("unknown network returned %d bundles, want empty list", len(none))
	}
}

func TestGetBundlesDefaultsExpiryFields(t *testing.T) {
	svc := newCatalogService(t)

	b, err := svc.GetBundle(context.Background(), "mtn-1gb")
	if err != nil {
		t.Fatal(err)
	}
	if b == nil {
		t.Fatal("bundle not found")
	}
	if b.Expires {
		t.Error("expires should default to false")
	}
	if b.ExpiryNote != "No expiry" {
		t.Errorf("expiry note = %q, want default", b.ExpiryNote)
	}

	b, err = svc.GetBundle(context.Background(), "mtn-2gb")
	if err != nil {
		t.Fatal(err)
	}
	if !b.Expires || b.ExpiryNote != "Expires in 30 days" {
		t.Errorf("explicit expiry fields not preserved: %+v", b)
	}
}

func TestGetCategoriesDerivedFromCatalog(t *testing.T) {
	svc := newCatalogService(t)

	cats, err := svc.GetCategories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 3 {
		t.Fatalf("got %d categories, want 3 distinct networks", len(cats))
	}
	if cats[0].Network != "MTN" || cats[1].Network != "Telecel" || cats[2].Network != "AFA" {
		t.Errorf("categories not in first-seen order: %+v", cats)
	}
	if cats[0].Slug != "mtn" || cats[0].Badge != "BEST SELLING" {
		t.Errorf("MTN presentation config not applied: %+v", cats[0])
	}
}
