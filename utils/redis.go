package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oguzkaan/campus-events-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used for rate limiting and
// discovery caching.
func InitRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}

	redisClient = client
	return nil
}

func GetRedisClient() *redis.Client {
	return redisClient
}

// CacheGetJSON loads a cached JSON value into dest. Returns false on miss or
// when Redis is unavailable, so callers always fall back to the database.
func CacheGetJSON(ctx context.Context, key string, dest interface{}) bool {
	if redisClient == nil {
		return false
	}
	raw, err := redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// CacheSetJSON stores a JSON value with a TTL. Failures are ignored; the cache
// is best-effort.
func CacheSetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	redisClient.Set(ctx, key, raw, ttl)
}

// CacheInvalidate removes cached keys after a write.
func CacheInvalidate(ctx context.Context, keys ...string) {
	if redisClient == nil || len(keys) == 0 {
		return
	}
	redisClient.Del(ctx, keys...)
}
