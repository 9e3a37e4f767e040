package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/oguzkaan/campus-events-backend/utils"
)

// RateLimiter returns a Gin middleware that limits requests per IP. The limit
// counters live in Redis so they survive restarts and are shared across
// replicas; when Redis is down the limiter falls back to an in-memory store.
func RateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  120,
	}

	var store limiter.Store
	if client := utils.GetRedisClient(); client != nil {
		s, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix: "ratelimit",
		})
		if err == nil {
			store = s
		} else {
			log.Printf("redis rate-limit store unavailable, using memory store: %v", err)
		}
	}
	if store == nil {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
