package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scanlens/backend/internal/domain"
)

func newTestCache(t *testing.T) (*FileCache, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "products.json")
	c, err := NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v, want nil", err)
	}
	return c, path
}

func TestFileCache_PutAndGet(t *testing.T) {
	c, _ := newTestCache(t)

	record := &domain.ProductRecord{
		Barcode:    "3274080005003",
		Name:       "Natural Spring Water",
		VolumeText: "500 ml",
		Category:   domain.CategoryWater,
	}

	if err := c.Put(record); err != nil {
		t.Fatalf("Put() error = %v, want nil", err)
	}

	got, ok := c.Get("3274080005003")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Name != "Natural Spring Water" {
		t.Errorf("Get() name = %s, want Natural Spring Water", got.Name)
	}

	if _, ok := c.Get("unknown"); ok {
		t.Error("Get() for unknown barcode ok = true, want false")
	}
}

func TestFileCache_PutOverwrites(t *testing.T) {
	c, _ := newTestCache(t)

	first := &domain.ProductRecord{Barcode: "111", Name: "First", Keywords: []string{"a"}}
	second := &domain.ProductRecord{Barcode: "111", Name: "Second"}

	if err := c.Put(first); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put(second); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get("111")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Name != "Second" {
		t.Errorf("Get() name = %s, want Second", got.Name)
	}
	// Whole-record overwrite: no field-level merge
	if got.Keywords != nil {
		t.Errorf("Get() keywords = %v, want nil", got.Keywords)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestFileCache_PutValidation(t *testing.T) {
	c, _ := newTestCache(t)

	if err := c.Put(nil); err == nil {
		t.Error("Put(nil) error = nil, want error")
	}
	if err := c.Put(&domain.ProductRecord{Name: "No barcode"}); err == nil {
		t.Error("Put() with empty barcode error = nil, want error")
	}
}

func TestFileCache_PersistenceRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		records []*domain.ProductRecord
	}{
		{
			name:    "empty mapping",
			records: nil,
		},
		{
			name: "single record",
			records: []*domain.ProductRecord{
				{Barcode: "111", Name: "Water", VolumeText: "500 ml", Category: domain.CategoryWater},
			},
		},
		{
			name: "multiple records with unicode names",
			records: []*domain.ProductRecord{
				{Barcode: "111", Name: "Thé glacé pêche", Category: domain.CategoryTea},
				{Barcode: "222", Name: "Café au lait 咖啡", Category: domain.CategoryCoffee},
				{Barcode: "333", Name: "Ανθρακούχο νερό", VolumeText: "1 L", Keywords: []string{"νερό"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "products.json")

			c, err := NewFileCache(path)
			if err != nil {
				t.Fatalf("NewFileCache() error = %v", err)
			}
			for _, record := range tt.records {
				if err := c.Put(record); err != nil {
					t.Fatalf("Put() error = %v", err)
				}
			}
			if len(tt.records) == 0 {
				if err := c.Clear(); err != nil {
					t.Fatalf("Clear() error = %v", err)
				}
			}

			// Simulate process restart
			reloaded, err := NewFileCache(path)
			if err != nil {
				t.Fatalf("NewFileCache() after restart error = %v", err)
			}

			if reloaded.Len() != len(tt.records) {
				t.Fatalf("Len() after reload = %d, want %d", reloaded.Len(), len(tt.records))
			}
			for _, want := range tt.records {
				got, ok := reloaded.Get(want.Barcode)
				if !ok {
					t.Fatalf("Get(%s) after reload ok = false, want true", want.Barcode)
				}
				if got.Name != want.Name || got.VolumeText != want.VolumeText || got.Category != want.Category {
					t.Errorf("Get(%s) after reload = %+v, want %+v", want.Barcode, got, want)
				}
			}
		})
	}
}

func TestFileCache_MissingFileStartsEmpty(t *testing.T) {
	c, err := NewFileCache(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v, want nil", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestFileCache_CorruptFileDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(`{"version": 1, "products": {truncated`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	c, err := NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v, want nil (corrupt cache is discarded, not fatal)", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after discarding corrupt cache", c.Len())
	}
}

func TestFileCache_VersionMismatchDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	blob := `{"version": 99, "products": {"111": {"barcode": "111", "name": "Old Shape"}}}`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	c, err := NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v, want nil", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after version mismatch", c.Len())
	}
}

func TestFileCache_ClearPersists(t *testing.T) {
	c, path := newTestCache(t)

	if err := c.Put(&domain.ProductRecord{Barcode: "111", Name: "Water"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	reloaded, err := NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if reloaded.Len() != 0 {
		t.Errorf("Len() after reload = %d, want 0", reloaded.Len())
	}
}

func TestFileCache_RequiresPath(t *testing.T) {
	if _, err := NewFileCache(""); err == nil {
		t.Error("NewFileCache(\"\") error = nil, want error")
	}
}

func TestFileCache_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "products.json")

	c, err := NewFileCache(path)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if err := c.Put(&domain.ProductRecord{Barcode: "111", Name: "Water"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("cache file not written: %v", err)
	}
}
