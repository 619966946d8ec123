package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/config"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"

	// A batch evaluates many charts, so it spends more of the client's budget.
	batchRequestCost = 5
	visitorTTL       = 5 * time.Minute
)

// requestIDMiddleware propagates the caller's X-Request-ID or assigns one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"requestId", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// errorHandlingMiddleware renders the last handler error as
// {"error":{"code","message"}} unless a response was already written.
func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		level := slog.LevelWarn
		if httpErr.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			"requestId", c.GetString(requestIDKey),
			"code", httpErr.Code,
			"status", httpErr.Status,
			"path", c.Request.URL.Path,
			"error", httpErr.Err,
		)

		message := httpErr.Message
		if message == "" {
			message = httpErr.Error()
		}
		c.JSON(httpErr.Status, gin.H{"error": gin.H{"code": httpErr.Code, "message": message}})
	}
}

// rateLimitMiddleware charges each request against a per-IP token bucket.
// Batch chart requests cost batchRequestCost tokens, everything else one.
func rateLimitMiddleware(cfg config.RateLimitConfig, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := newIPRateLimiter(cfg, time.Now)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		cost := requestCost(c.FullPath())
		wait, ok := limiter.take(ip, cost)
		if ok {
			c.Next()
			return
		}
		logger.Warn("rate limit exceeded", "requestId", c.GetString(requestIDKey), "ip", ip, "route", c.FullPath(), "cost", cost)
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
		abortWithError(c, NewHTTPError(http.StatusTooManyRequests, "rate_limit_exceeded", "too many requests", nil))
	}
}

func requestCost(route string) float64 {
	if route == "/api/v1/charts/batch" {
		return batchRequestCost
	}
	return 1
}

// retryAfterSeconds rounds a wait up to whole seconds, never below one.
func retryAfterSeconds(wait time.Duration) int {
	return max(1, int(math.Ceil(wait.Seconds())))
}

// ipRateLimiter keeps one continuously refilled bucket per client IP.
type ipRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	perMinute float64
	capacity  float64
	lastSweep time.Time
	now       func() time.Time
}

type tokenBucket struct {
	tokens  float64
	updated time.Time
}

func newIPRateLimiter(cfg config.RateLimitConfig, now func() time.Time) *ipRateLimiter {
	return &ipRateLimiter{
		buckets:   make(map[string]*tokenBucket),
		perMinute: float64(cfg.RequestsPerMinute),
		capacity:  math.Max(1, float64(cfg.Burst)),
		lastSweep: now(),
		now:       now,
	}
}

// take spends cost tokens from ip's bucket. A cost above the bucket
// capacity is clamped so that it can still be paid from a full bucket.
// On refusal it returns how long until enough tokens accrue.
func (l *ipRateLimiter) take(ip string, cost float64) (time.Duration, bool) {
	cost = math.Min(cost, l.capacity)

	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) > visitorTTL {
		for key, b := range l.buckets {
			if now.Sub(b.updated) > visitorTTL {
				delete(l.buckets, key)
			}
		}
		l.lastSweep = now
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, updated: now}
		l.buckets[ip] = b
	}
	if elapsed := now.Sub(b.updated).Minutes(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.perMinute)
	}
	b.updated = now

	if b.tokens < cost {
		return time.Duration((cost - b.tokens) / l.perMinute * float64(time.Minute)), false
	}
	b.tokens -= cost
	return 0, true
}
