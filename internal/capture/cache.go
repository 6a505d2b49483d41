package capture

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"decision-analysis/internal/model"
)

// ResultCache is the Page Capture result cache contract (spec.md §4.2). It
// is intentionally narrow so the in-process default and the optional
// Redis-backed implementation are interchangeable.
type ResultCache interface {
	Get(key string) (model.Capture, bool)
	Set(key string, c model.Capture)
	Delete(key string)
}

// MemoryResultCache is the default backend: an in-process TTL cache.
type MemoryResultCache struct {
	c *gocache.Cache
}

// NewMemoryResultCache builds the default cache with the configured TTL
// (spec.md §6, default 1800s).
func NewMemoryResultCache(ttl time.Duration) *MemoryResultCache {
	return &MemoryResultCache{c: gocache.New(ttl, ttl*2)}
}

func (m *MemoryResultCache) Get(key string) (model.Capture, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return model.Capture{}, false
	}
	cap, ok := v.(model.Capture)
	return cap, ok
}

func (m *MemoryResultCache) Set(key string, c model.Capture) {
	m.c.Set(key, c, gocache.DefaultExpiration)
}

func (m *MemoryResultCache) Delete(key string) {
	m.c.Delete(key)
}

// RedisResultCache is a swappable persistent backend for the capture
// result cache, proving the interface is pluggable the same way the Memory
// Layer's memory.Store is (spec.md §4.7's "designed so a persistent
// backing store can be slotted in" carried over to this cache).
type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisResultCache connects to the given address. Connection failures
// surface on first use, not here — capture treats a cache miss the same
// whether it's a true miss or a transport error, then continues without
// degrading the request.
func NewRedisResultCache(addr string, ttl time.Duration) *RedisResultCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisResultCache{client: client, ttl: ttl}
}

func (r *RedisResultCache) Get(key string) (model.Capture, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	raw, err := r.client.Get(ctx, "capture:"+key).Bytes()
	if err != nil {
		return model.Capture{}, false
	}
	var c model.Capture
	if err := json.Unmarshal(raw, &c); err != nil {
		return model.Capture{}, false
	}
	return c, true
}

func (r *RedisResultCache) Set(key string, c model.Capture) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	r.client.Set(ctx, "capture:"+key, raw, r.ttl)
}

func (r *RedisResultCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r.client.Del(ctx, "capture:"+key)
}
