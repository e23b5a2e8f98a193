package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/value-sniper/internal/models"
)

// DatasetCache holds parsed datasets keyed by a hash of the raw file
// content. Keying on content rather than source identity means a
// re-uploaded identical file hits the cache while any edit misses it;
// the cache owns nothing else and the row computations stay cache-free.
type DatasetCache struct {
	store *gocache.Cache
}

// NewDatasetCache creates a cache whose entries expire after ttl. A zero
// ttl disables expiry.
func NewDatasetCache(ttl time.Duration) *DatasetCache {
	expiry := ttl
	if expiry <= 0 {
		expiry = gocache.NoExpiration
	}
	return &DatasetCache{store: gocache.New(expiry, 2*time.Minute)}
}

// Fingerprint derives the cache key from raw file content.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached dataset for a content key.
func (c *DatasetCache) Get(key string) ([]*models.Fixture, bool) {
	entry, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	fixtures, ok := entry.([]*models.Fixture)
	return fixtures, ok
}

// Put stores a parsed dataset under a content key.
func (c *DatasetCache) Put(key string, fixtures []*models.Fixture) {
	c.store.Set(key, fixtures, gocache.DefaultExpiration)
}
