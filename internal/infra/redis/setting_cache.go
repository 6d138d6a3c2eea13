package redis

import (
	"context"
	"time"
)

// SettingCache is a read-through cache for the settings table. The portal UI
// polls a handful of keys on every page load; there is no reason to hit
// Postgres each time for values that change a few times a year.
type SettingCache struct {
	client *Client
	ttl    time.Duration
}

func NewSettingCache(client *Client, ttl time.Duration) *SettingCache {
	return &SettingCache{client: client, ttl: ttl}
}

func (c *SettingCache) key(k string) string { return "setting:" + k }

// Get returns (value, true) on a hit. Errors degrade to a miss; the caller
// falls back to the database.
func (c *SettingCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.client.Get(ctx, c.key(key))
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *SettingCache) Put(ctx context.Context, key, value string) {
	_ = c.client.Set(ctx, c.key(key), value, c.ttl)
}

// Invalidate drops a key after an admin write so readers see the new value
// immediately instead of after TTL expiry.
func (c *SettingCache) Invalidate(ctx context.Context, key string) {
	_ = c.client.Del(ctx, c.key(key))
}
