package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type record struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestLoadCreatesEmptyArrayLazily(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "items.json")
	f := NewFile(path)

	var items []record
	if err := f.Load(&items); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty array, got %d items", len(items))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("lazy file contents = %q, want []", data)
	}
}

func TestAppendAndLoad(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "items.json"))

	if err := f.Append(record{Name: "a", N: 1}); err != nil {
		t.Fatal(err)
	}
	if err := f.Append(record{Name: "b", N: 2}); err != nil {
		t.Fatal(err)
	}

	var items []record
	if err := f.Load(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Name != "a" || items[1].Name != "b" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestConcurrentAppendsDoNotLoseRecords(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "items.json"))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := f.Append(record{Name: "w", N: n}); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var items []record
	if err := f.Load(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != writers {
		t.Errorf("lost records: got %d, want %d", len(items), writers)
	}
}

func TestLoadToleratesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var items []record
	if err := NewFile(path).Load(&items); err != nil {
		t.Fatalf("Load on empty file: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}
