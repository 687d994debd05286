// internal/api/ratelimit.go
package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jamelna-apps/plangen/internal/errors"
)

// RateLimiter implements a sliding-window request counter per caller
// identity. This is the only shared mutable state in the pipeline.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed           bool
	Remaining         int
	RetryAfterSeconds int
	IdentityKey       string
}

// NewRateLimiter creates a limiter allowing limit requests per window per
// identity, and starts a background sweep of idle identities.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}

	go rl.cleanup()

	return rl
}

// cleanup removes identities whose entire window has expired.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := rl.now()
		for key, stamps := range rl.visitors {
			if len(stamps) == 0 || now.Sub(stamps[len(stamps)-1]) > rl.window {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Admit records and decides one request for the given identity. When the
// window is full, the decision carries the seconds until the oldest
// in-window request ages out.
func (rl *RateLimiter) Admit(key string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	stamps := rl.visitors[key]
	kept := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= rl.limit {
		rl.visitors[key] = kept
		retryAfter := int(kept[0].Sub(cutoff).Seconds())
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Decision{
			Allowed:           false,
			Remaining:         0,
			RetryAfterSeconds: retryAfter,
			IdentityKey:       key,
		}
	}

	kept = append(kept, now)
	rl.visitors[key] = kept

	return Decision{
		Allowed:     true,
		Remaining:   rl.limit - len(kept),
		IdentityKey: key,
	}
}

// Middleware rejects over-limit requests with a structured 429 before any
// handler work happens, so no stream is opened and no external call made.
func (rl *RateLimiter) Middleware(keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := rl.Admit(keyFunc(c))

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))

		if !decision.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", decision.RetryAfterSeconds))

			appErr := apperrors.NewRateLimitedError("generation rate limit exceeded", decision.RetryAfterSeconds)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":             false,
				"code":                appErr.Code,
				"error":               appErr.Message,
				"retry_after_seconds": appErr.RetryAfterSeconds,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// identityKey derives the caller identity: an explicit user header when
// present, the client IP otherwise.
func identityKey(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return userID
	}
	return c.ClientIP()
}

// GenerateRateLimit builds the admission middleware for the generation
// endpoints. Generation is the most expensive operation in the system, so
// its window is much tighter than ordinary endpoints.
func GenerateRateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return NewRateLimiter(limit, window).Middleware(identityKey)
}
