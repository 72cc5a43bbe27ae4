package shipping

import (
	"context"
	"encoding/json"
	"time"

	"github.com/scentvault/storefront-backend/pkg/redis"
)

// cacheStore is the subset of the redis client the snapshot cache needs.
type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// SnapshotCache keeps the last loaded configuration snapshot in redis so quotes
// skip the three configuration queries. Admin writes invalidate it.
type SnapshotCache struct {
	store cacheStore
	ttl   time.Duration
}

// NewSnapshotCache returns nil when store is nil, which disables caching.
func NewSnapshotCache(store cacheStore, ttl time.Duration) *SnapshotCache {
	if store == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SnapshotCache{store: store, ttl: ttl}
}

func (c *SnapshotCache) key() string {
	return c.store.CacheKey("shipping", "snapshot")
}

// Get returns the cached snapshot. A miss is (false, nil).
func (c *SnapshotCache) Get(ctx context.Context) (Snapshot, bool, error) {
	raw, err := c.store.Get(ctx, c.key())
	if err != nil {
		if redis.IsMiss(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (c *SnapshotCache) Put(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key(), string(payload), c.ttl)
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	return c.store.Del(ctx, c.key())
}
