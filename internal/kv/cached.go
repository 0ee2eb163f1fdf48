package kv

import (
	"context"

	"github.com/coocood/freecache"
)

const megabyte = 1024 * 1024

// CachedStore is a read-through, write-through cache in front of a Store.
// Only present keys are cached.
type CachedStore struct {
	inner Store
	cache *freecache.Cache
}

func NewCached(inner Store, sizeMB int) *CachedStore {
	return &CachedStore{
		inner: inner,
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if b, err := c.cache.Get([]byte(key)); err == nil {
		return string(b), true, nil
	}
	v, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return v, ok, err
	}
	// values larger than a cache segment are simply not cached
	_ = c.cache.Set([]byte(key), []byte(v), 0)
	return v, true, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		c.cache.Del([]byte(key))
		return err
	}
	if err := c.cache.Set([]byte(key), []byte(value), 0); err != nil {
		c.cache.Del([]byte(key))
	}
	return nil
}

func (c *CachedStore) Remove(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		c.cache.Del([]byte(k))
	}
	return c.inner.Remove(ctx, keys...)
}

// Stats reports cache hits and misses since creation.
func (c *CachedStore) Stats() (hits, misses int64) {
	return c.cache.HitCount(), c.cache.MissCount()
}

func (c *CachedStore) Close() error {
	c.cache.Clear()
	return c.inner.Close()
}
