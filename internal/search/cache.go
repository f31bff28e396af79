package search

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"gamecontest/internal/game"
	"gamecontest/internal/logging"
)

const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 6 * time.Hour
)

// Cache stores ranked search results by lowercased query. Implementations
// must be safe for concurrent use. A backend failure is a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]game.Candidate, bool)
	Set(ctx context.Context, key string, candidates []game.Candidate)
}

// CacheKey is the cache key of a raw query.
func CacheKey(query string) string {
	return strings.ToLower(query)
}

// MemoryCache is a bounded in-process LRU whose entries also expire after a TTL.
type MemoryCache struct {
	lru *expirable.LRU[string, []game.Candidate]
}

// NewMemoryCache creates an LRU of at most size entries. ttl <= 0 disables expiry.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &MemoryCache{lru: expirable.NewLRU[string, []game.Candidate](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]game.Candidate, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

func (c *MemoryCache) Set(_ context.Context, key string, candidates []game.Candidate) {
	c.lru.Add(key, slices.Clone(candidates))
}

// Len is the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// RedisCache shares results between replicas. Values are JSON encoded.
type RedisCache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	prefix string
	log    *logrus.Entry
}

func NewRedisCache(rdb redis.UniversalClient, ttl time.Duration, log *logrus.Entry) *RedisCache {
	return &RedisCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: "gamecontest:search:",
		log:    logging.OrDiscard(log).WithField("component", "search_cache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]game.Candidate, bool) {
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache read failed")
		}
		return nil, false
	}
	var out []game.Candidate
	if err := json.Unmarshal(data, &out); err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache entry undecodable")
		return nil, false
	}
	return out, true
}

func (c *RedisCache) Set(ctx context.Context, key string, candidates []game.Candidate) {
	if candidates == nil {
		candidates = []game.Candidate{}
	}
	data, err := json.Marshal(candidates)
	if err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache entry unencodable")
		return
	}
	if err := c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("cache write failed")
	}
}
