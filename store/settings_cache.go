package store

import (
	"context"
	"time"

	"github.com/tidwall/buntdb"
)

// settingsCache is the read-cache backend used by CachedSettings. Values
// expire after the configured TTL; misses fall through to the database.
type settingsCache interface {
	get(ctx context.Context, key string) (string, bool)
	put(ctx context.Context, key, value string)
	del(ctx context.Context, key string)
}

// CachedSettings decorates a SettingsStore with a short-lived read cache
// so hot flags (the identity mode in particular) do not hit the database
// on every request. Writes go through to the store and refresh the cache.
type CachedSettings struct {
	store *SettingsStore
	cache settingsCache
}

const settingsCacheTTL = 5 * time.Second

// NewCachedSettings wraps the store with an in-process buntdb cache.
func NewCachedSettings(store *SettingsStore) (*CachedSettings, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, err
	}
	return &CachedSettings{store: store, cache: &buntCache{db: db, ttl: settingsCacheTTL}}, nil
}

// NewCachedSettingsWith wraps the store with an explicit cache backend,
// e.g. the Valkey backend for multi-instance deployments.
func NewCachedSettingsWith(store *SettingsStore, cache settingsCache) *CachedSettings {
	return &CachedSettings{store: store, cache: cache}
}

// GetValue returns the cached value when fresh, otherwise reads through.
func (c *CachedSettings) GetValue(ctx context.Context, key, defaultValue string) (string, error) {
	if v, ok := c.cache.get(ctx, key); ok {
		return v, nil
	}
	v, err := c.store.GetValue(ctx, key, defaultValue)
	if err != nil {
		return defaultValue, err
	}
	c.cache.put(ctx, key, v)
	return v, nil
}

// GetBool returns a cached boolean setting.
func (c *CachedSettings) GetBool(ctx context.Context, key string, defaultValue bool) bool {
	if v, ok := c.cache.get(ctx, key); ok {
		return v == "true" || v == "1"
	}
	v := c.store.GetBool(ctx, key, defaultValue)
	if v {
		c.cache.put(ctx, key, "true")
	} else {
		c.cache.put(ctx, key, "false")
	}
	return v
}

// Set writes through to the store and refreshes the cache entry.
func (c *CachedSettings) Set(ctx context.Context, key, value string) error {
	if err := c.store.Set(ctx, key, value); err != nil {
		return err
	}
	c.cache.put(ctx, key, value)
	return nil
}

// SetBool writes a boolean setting through to the store.
func (c *CachedSettings) SetBool(ctx context.Context, key string, value bool) error {
	if value {
		return c.Set(ctx, key, "true")
	}
	return c.Set(ctx, key, "false")
}

// SetWithDescription writes a setting and its description through.
func (c *CachedSettings) SetWithDescription(ctx context.Context, key, value, description string) error {
	if err := c.store.SetWithDescription(ctx, key, value, description); err != nil {
		return err
	}
	c.cache.put(ctx, key, value)
	return nil
}

// ListAll bypasses the cache: listings are rare and must be current.
func (c *CachedSettings) ListAll(ctx context.Context) ([]AppSetting, error) {
	return c.store.ListAll(ctx)
}

// Invalidate drops a cache entry, forcing the next read to hit the store.
func (c *CachedSettings) Invalidate(ctx context.Context, key string) {
	c.cache.del(ctx, key)
}

// buntCache is the in-process backend: buntdb keys with a TTL.
type buntCache struct {
	db  *buntdb.DB
	ttl time.Duration
}

func (b *buntCache) get(_ context.Context, key string) (string, bool) {
	var val string
	err := b.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(key)
		if err != nil {
			return err
		}
		val = v
		return nil
	})
	if err != nil {
		return "", false
	}
	return val, true
}

func (b *buntCache) put(_ context.Context, key, value string) {
	_ = b.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(key, value, &buntdb.SetOptions{Expires: true, TTL: b.ttl})
		return err
	})
}

func (b *buntCache) del(_ context.Context, key string) {
	_ = b.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(key)
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
}
