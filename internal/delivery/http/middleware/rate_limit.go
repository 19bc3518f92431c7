package middleware

import (
	"fmt"
	"sync"
	"time"

	"go-talentpool-backend/pkg/apperror"
	"go-talentpool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for fixed-window rate limiting.
type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
}

// AuthRateLimitConfig limits registration/login attempts per client IP.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:auth:"}
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per key in fixed windows. Counters live in
// Redis when a client is provided and in process memory otherwise. Redis
// failures fail open: an unreachable counter never blocks logins.
type RateLimiter struct {
	cfg   RateLimitConfig
	redis *goredis.Client

	mu      sync.Mutex
	entries map[string]*windowEntry
}

func NewRateLimiter(redisClient *goredis.Client, cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		cfg:     cfg,
		redis:   redisClient,
		entries: make(map[string]*windowEntry),
	}
}

// Handler returns the gin middleware enforcing the limit per client IP.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := l.allow(c, c.ClientIP())
		if !allowed {
			c.Error(apperror.TooManyRequests("Too many requests. Please try again later."))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *RateLimiter) allow(c *gin.Context, key string) bool {
	if l.redis != nil {
		allowed, err := l.allowRedis(c, key)
		if err == nil {
			return allowed
		}
		logger.Log.Warn("rate limiter falling back to memory", "error", err)
	}
	return l.allowMemory(key)
}

func (l *RateLimiter) allowRedis(c *gin.Context, key string) (bool, error) {
	redisKey := l.cfg.KeyPrefix + key

	pipe := l.redis.TxPipeline()
	incr := pipe.Incr(c.Request.Context(), redisKey)
	pipe.Expire(c.Request.Context(), redisKey, l.cfg.Window)
	if _, err := pipe.Exec(c.Request.Context()); err != nil {
		return false, fmt.Errorf("rate limit pipeline: %w", err)
	}
	return incr.Val() <= int64(l.cfg.Limit), nil
}

func (l *RateLimiter) allowMemory(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || now.After(entry.resetAt) {
		l.entries[key] = &windowEntry{count: 1, resetAt: now.Add(l.cfg.Window)}
		l.sweepLocked(now)
		return true
	}

	entry.count++
	return entry.count <= l.cfg.Limit
}

// sweepLocked drops expired windows so the map does not grow unbounded.
// Called with the mutex held, only when a new window opens.
func (l *RateLimiter) sweepLocked(now time.Time) {
	if len(l.entries) < 1024 {
		return
	}
	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
		}
	}
}
