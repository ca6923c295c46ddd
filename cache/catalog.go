// Package cache provides a Redis-backed cache-aside layer for the public
// product catalog. When no Redis address is configured the catalog cache is
// nil and every method is a no-op, so callers never branch on availability.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "catalog:"
	defaultTTL = 2 * time.Minute
)

type Catalog struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogFromEnv connects to REDIS_ADDR, or returns nil when it is unset.
func NewCatalogFromEnv() *Catalog {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis unavailable, catalog cache disabled: %v", err)
		return nil
	}
	return &Catalog{client: client, ttl: defaultTTL}
}

// Get unmarshals the cached value for key into dest. Returns false on a miss
// or any cache error; misses are never fatal for the request path.
func (c *Catalog) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set stores value under key with the catalog TTL.
func (c *Catalog) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		log.Printf("warn: catalog cache set failed: %v", err)
	}
}

// Invalidate drops every catalog key. Called on product and flash-deal
// mutations so stale prices never outlive a change.
func (c *Catalog) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("warn: catalog cache invalidation failed: %v", err)
			return
		}
	}
}
