package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"todo_backend/internal/logger"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis. It returns nil when addr is empty or the
// server does not answer, and callers fall back to in-process limiting.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiter", "addr", addr, "error", err)
		_ = client.Close()
		return nil
	}
	logger.Info("redis connected", "addr", addr)
	return client
}

// RateLimiter is a fixed-window limiter keyed by client IP. With a Redis
// client the window is shared across instances (INCR/EXPIRE); on Redis
// errors requests are let through.
type RateLimiter struct {
	rdb    *redis.Client
	mem    *memoryLimiter
	max    int
	window time.Duration
}

// NewRateLimiter builds a limiter; max <= 0 disables limiting.
func NewRateLimiter(rdb *redis.Client, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, mem: newMemoryLimiter(), max: max, window: window}
}

func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.max <= 0 {
			c.Next()
			return
		}

		count, err := l.count(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
			logger.FromContext(c.Request.Context()).Warn("rate limiter error", "error", err)
			c.Next()
			return
		}

		endpoint := c.FullPath()
		if count > int64(l.max) {
			RLBlocked.WithLabelValues(endpoint).Inc()
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(endpoint).Inc()
		c.Next()
	}
}

// key format: rl:<window_seconds>:<identifier>
func (l *RateLimiter) count(ctx context.Context, ident string) (int64, error) {
	if l.rdb == nil {
		return int64(l.mem.hit(ident, l.window)), nil
	}

	key := "rl:" + strconv.FormatInt(int64(l.window.Seconds()), 10) + ":" + ident
	val, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if val == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	return val, nil
}
