package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"listdist/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"

	// UploadRateLimitGroup covers list uploads, the only expensive route.
	UploadRateLimitGroup = "UPLOAD"
)

// RateLimitRule is a token bucket refilled at Rate tokens per second.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// RateLimitConfig selects a rule per request. Requests whose group has no
// rule pass through.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

// RateLimiter keeps one bucket per client and group.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter constructs a limiter; nil now uses the wall clock.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// UploadGroup routes POST /api/v1/lists to UploadRateLimitGroup.
func UploadGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/lists" {
		return UploadRateLimitGroup
	}
	return defaultRateLimitGroup
}

// RateLimit rejects requests over budget with 429 and a Retry-After header.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok {
			c.Next()
			return
		}

		allowed, retryAfter := cfg.Limiter.Allow(c.ClientIP()+"|"+group, rule)
		if allowed {
			c.Next()
			return
		}

		retryAfterMs := int(retryAfter / time.Millisecond)
		if retryAfterMs <= 0 {
			retryAfterMs = 1000
		}
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(retryAfterMs)/1000.0))))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", gin.H{
			"retryAfterMs": retryAfterMs,
		})
	}
}

// Allow takes one token for key. When the bucket is empty it reports how long
// until the next token.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = bucket
	}
	if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	if bucket.tokens >= 1 {
		bucket.tokens--
		return true, 0
	}
	waitSec := (1 - bucket.tokens) / rule.Rate
	return false, time.Duration(math.Ceil(waitSec*1000.0)) * time.Millisecond
}
