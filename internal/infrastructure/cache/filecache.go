package cache

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/scanlens/backend/internal/domain"
)

// schemaVersion tags the persisted blob; a mismatch on load discards the
// whole mapping so old record shapes can never be half-decoded into new ones
const schemaVersion = 1

// cacheBlob is the single serialized form of the whole mapping
type cacheBlob struct {
	Version  int                              `json:"version"`
	Products map[string]*domain.ProductRecord `json:"products"`
}

// FileCache is a thread-safe barcode -> ProductRecord store persisted as
// one JSON blob. The full mapping is loaded once at construction and
// rewritten synchronously after every mutation.
type FileCache struct {
	path  string
	data  map[string]*domain.ProductRecord
	mutex sync.RWMutex
}

// NewFileCache creates a cache backed by the blob at path, loading any
// persisted mapping. A missing file starts empty; a corrupt or
// version-mismatched file is discarded wholesale rather than partially
// trusted.
func NewFileCache(path string) (*FileCache, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path is required")
	}

	c := &FileCache{
		path: path,
		data: make(map[string]*domain.ProductRecord),
	}

	if err := c.loadFromStorage(); err != nil {
		log.Printf("[CACHE] Discarding persisted cache: %v", err)
		c.data = make(map[string]*domain.ProductRecord)
	}

	return c, nil
}

// Get retrieves the record for a barcode from the in-memory mapping
func (c *FileCache) Get(barcode string) (*domain.ProductRecord, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	record, ok := c.data[barcode]
	return record, ok
}

// Put stores a record, overwriting any existing entry for that barcode,
// and persists the full mapping before returning
func (c *FileCache) Put(record *domain.ProductRecord) error {
	if record == nil || record.Barcode == "" {
		return fmt.Errorf("record with barcode is required")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[record.Barcode] = record
	return c.persistToStorage()
}

// Clear empties the mapping and persists the empty state
func (c *FileCache) Clear() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*domain.ProductRecord)
	return c.persistToStorage()
}

// Len returns the number of cached records
func (c *FileCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// loadFromStorage reads the persisted blob into the in-memory mapping.
// Called once, from the constructor.
func (c *FileCache) loadFromStorage() error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache file: %w", err)
	}

	var blob cacheBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	if blob.Version != schemaVersion {
		return fmt.Errorf("cache schema version %d, want %d", blob.Version, schemaVersion)
	}

	if blob.Products != nil {
		c.data = blob.Products
	}
	return nil
}

// persistToStorage writes the full mapping as one blob. Written to a temp
// file and renamed so a crash mid-write never leaves a truncated cache.
// Caller must hold the write lock.
func (c *FileCache) persistToStorage() error {
	blob := cacheBlob{
		Version:  schemaVersion,
		Products: c.data,
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	return nil
}
