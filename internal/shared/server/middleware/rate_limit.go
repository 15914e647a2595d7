package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitRule is a static per-IP request allowance over a fixed window.
type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

// RateLimiter counts requests per client IP over fixed windows.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

type rateWindow struct {
	start time.Time
	count int
}

// NewRateLimiter builds a limiter; now is injectable for tests.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     now,
	}
}

// RateLimit enforces the rule keyed by client IP.
func RateLimit(rule RateLimitRule, limiter *RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		allowed, retryAfter := limiter.Allow(c.ClientIP(), rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterSeconds := int(retryAfter / time.Second)
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error":   "too many requests",
		})
	}
}

// Allow reports whether the request fits in the key's current window and,
// when it does not, how long until the window resets.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Limit <= 0 || rule.Window <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	win, ok := l.windows[key]
	if !ok || now.Sub(win.start) >= rule.Window {
		l.windows[key] = &rateWindow{start: now, count: 1}
		return true, 0
	}
	if win.count < rule.Limit {
		win.count++
		return true, 0
	}
	return false, rule.Window - now.Sub(win.start)
}
