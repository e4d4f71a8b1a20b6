package middlewares

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateCounter counts submissions against a key within a rolling window and
// reports how long until the window resets.
type RateCounter interface {
	Count(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisRateCounter backs the limiter with a Redis counter. The key is
// created with its TTL atomically (SET NX) before the increment, so a
// half-failed request can never leave a counter that outlives the window.
type RedisRateCounter struct {
	Client *redis.Client
}

func (r *RedisRateCounter) Count(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if err := r.Client.SetNX(ctx, key, 0, window).Err(); err != nil {
		return 0, 0, err
	}
	count, err := r.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	ttl, _ := r.Client.TTL(ctx, key).Result()
	return count, ttl, nil
}

// ReportRateLimiter caps how many reports a user may submit per day.
func ReportRateLimiter(counter RateCounter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID, ok := userIDVal.(string)
		if !ok || userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id missing"})
			c.Abort()
			return
		}

		queuePrefix := os.Getenv("REDIS_QUEUE_FOR_REPORT_LIMIT")
		if queuePrefix == "" {
			queuePrefix = "report_limit"
		}

		// Individual key per user
		userKey := queuePrefix + ":" + userID

		count, retryAfter, err := counter.Count(c.Request.Context(), userKey, 24*time.Hour)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rate limiter unavailable"})
			c.Abort()
			return
		}

		if count > int64(limit) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
