package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// searchCache holds search results in memory (L1) and, when configured, Redis (L2).
// Values are JSON so replicas sharing L2 can decode each other's entries.
var searchCache *tieredCache

// Cache hit/miss counters.
var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

// tieredCache implements L1 (memory) + L2 (Redis) caching.
type tieredCache struct {
	l1         sync.Map // key → *cacheEntry
	size       atomic.Int64
	rdb        *redis.Client // nil if Redis unavailable
	ttl        time.Duration
	maxEntries int
	stop       chan struct{}
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InitCache replaces the search cache. An empty or unusable redisURL leaves L2 off;
// the cache then runs from memory alone.
func InitCache(redisURL string, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) {
	c := &tieredCache{
		rdb:        connectRedis(redisURL),
		ttl:        ttl,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
	}
	if searchCache != nil {
		searchCache.close()
	}
	searchCache = c
	slog.Info("cache: initialized", slog.Duration("ttl", ttl), slog.Bool("redis", c.rdb != nil), slog.Int("max_entries", maxEntries))

	go c.cleanupLoop(cleanupInterval)
}

func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		return nil
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("cache: redis unreachable, L2 disabled", slog.String("addr", opts.Addr), slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}
	slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
	return rdb
}

// CacheKey builds a deterministic storage key from parts.
func CacheKey(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("vj:%x", hash[:12]) // 24-char hex
}

func cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if searchCache == nil {
		cacheMisses.Add(1)
		return nil, false
	}
	data, tier, ok := searchCache.get(ctx, key)
	if !ok {
		cacheMisses.Add(1)
		return nil, false
	}
	cacheHits.Add(1)
	slog.Debug("cache: hit", slog.String("tier", tier), slog.String("key", key))
	return data, true
}

func cacheSet(ctx context.Context, key string, data []byte) {
	if searchCache != nil {
		searchCache.set(ctx, key, data)
	}
}

// get reads L1, then L2. An L2 hit is copied into L1 with a fresh TTL.
func (c *tieredCache) get(ctx context.Context, key string) ([]byte, string, bool) {
	if val, ok := c.l1.Load(key); ok {
		entry := val.(*cacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.data, "l1", true
		}
		c.delete(key)
	}
	if c.rdb == nil {
		return nil, "", false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Debug("cache: L2 get failed", slog.Any("error", err))
		}
		return nil, "", false
	}
	c.put(key, data)
	return data, "l2", true
}

// set writes both tiers. L2 failures are logged and otherwise ignored.
func (c *tieredCache) set(ctx context.Context, key string, data []byte) {
	c.evictIfNeeded()
	c.put(key, data)
	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

func (c *tieredCache) put(key string, data []byte) {
	entry := &cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
	if _, loaded := c.l1.Swap(key, entry); !loaded {
		c.size.Add(1)
	}
}

func (c *tieredCache) delete(key any) {
	if _, loaded := c.l1.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

// CacheLoadJSON loads a cached value of type T.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var zero T
	data, ok := cacheGet(ctx, key)
	if !ok {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it in the cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	cacheSet(ctx, key, data)
}

// CacheStats returns current cache hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

// evictIfNeeded makes room for one more L1 entry: expired entries go first,
// then the ones closest to expiry.
func (c *tieredCache) evictIfNeeded() {
	if c.maxEntries <= 0 || int(c.size.Load()) < c.maxEntries {
		return
	}
	c.dropExpired(time.Now())
	for int(c.size.Load()) >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			entry := val.(*cacheEntry)
			if oldestKey == nil || entry.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, entry.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.delete(oldestKey)
	}
}

func (c *tieredCache) dropExpired(now time.Time) {
	c.l1.Range(func(key, val any) bool {
		if now.After(val.(*cacheEntry).expiresAt) {
			c.delete(key)
		}
		return true
	})
}

// cleanupLoop periodically removes expired L1 entries until the cache is replaced.
func (c *tieredCache) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.dropExpired(time.Now())
		}
	}
}

func (c *tieredCache) close() {
	close(c.stop)
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
