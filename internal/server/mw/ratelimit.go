package mw

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Abdulah-eng/driverApp/internal/server/resp"
)

const rateLimitWindow = time.Second

// RateLimit is a Redis-backed fixed-window per-IP limit; it is distributed,
// so it holds across replicas. Fails open when Redis is unreachable.
func RateLimit(rdb *redis.Client, limitPerSec int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, rateLimitWindow)
		}

		if count > int64(limitPerSec) {
			c.Header("Retry-After", "1")
			resp.Error(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limitPerSec))
		c.Next()
	}
}
