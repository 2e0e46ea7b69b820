package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/pkg/filesystem"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// CatalogCache stores the downloaded location catalog as a JSON blob
// so repeated location-name lookups do not hit the provider.
type CatalogCache struct {
	path string
	ttl  time.Duration
	mu   sync.Mutex
}

type catalogEnvelope struct {
	CreatedAt time.Time         `json:"created_at"`
	Locations []domain.Location `json:"locations"`
}

// NewCatalogCache returns a cache rooted under ~/.serpkit/cache.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{
		path: filepath.Join(filesystem.UserHomeDir(), ".serpkit", "cache", "locations.json"),
		ttl:  30 * 24 * time.Hour,
	}
}

// Get retrieves the cached catalog if present and fresh.
func (c *CatalogCache) Get() ([]domain.Location, bool, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var envelope catalogEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, false, err
	}
	if c.ttl > 0 && time.Since(envelope.CreatedAt) > c.ttl {
		_ = os.Remove(c.path)
		return nil, false, nil
	}
	return envelope.Locations, true, nil
}

// Set stores the catalog.
func (c *CatalogCache) Set(locations []domain.Location) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(catalogEnvelope{CreatedAt: time.Now(), Locations: locations})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// Clear removes the cached catalog.
func (c *CatalogCache) Clear() error {
	err := os.Remove(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Path exposes the cache file path.
func (c *CatalogCache) Path() string {
	return c.path
}

var _ ports.CatalogCache = (*CatalogCache)(nil)
