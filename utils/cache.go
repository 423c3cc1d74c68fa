// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"cliniq/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CounterClient backs the token counter store.
	CounterClient *redis.Client
	// CacheClient is the generic cache client (availability snapshots, etc.).
	CacheClient *redis.Client
)

// InitCounterClient initializes the Redis client used for token sequence
// counters. Counter increments are the one operation the engine relies on
// being atomic.
func InitCounterClient() {
	CounterClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCounterDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CounterClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Counter): %v", err)
	}
}

// GetCounterClient returns the counter Redis client.
func GetCounterClient() *redis.Client {
	if CounterClient == nil {
		InitCounterClient()
	}
	return CounterClient
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
