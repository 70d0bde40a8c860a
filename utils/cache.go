package utils

import (
	"context"
	"log"
	"time"

	"zmina/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// ScopeCacheClient is the dedicated client for permission-scope caching.
	ScopeCacheClient *redis.Client
)

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

// InitScopeCache initializes the Redis client holding cached apartment
// assignment sets used by permission checks.
func InitScopeCache() {
	ScopeCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisScopeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ScopeCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Scope Cache): %v", err)
	}
}

// GetScopeCacheClient returns the Redis client for permission-scope caching.
func GetScopeCacheClient() *redis.Client {
	if ScopeCacheClient == nil {
		InitScopeCache()
	}
	return ScopeCacheClient
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	InitCache()
	InitScopeCache()
}
