// internal/api/ratelimit_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAdmit(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return current }

	first := rl.Admit("user-a")
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second := rl.Admit("user-a")
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third := rl.Admit("user-a")
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
	assert.Equal(t, 60, third.RetryAfterSeconds)
}

func TestRateLimiterWindowSlides(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return current }

	assert.True(t, rl.Admit("user-a").Allowed)
	assert.False(t, rl.Admit("user-a").Allowed)

	current = current.Add(61 * time.Second)
	assert.True(t, rl.Admit("user-a").Allowed)
}

func TestRateLimiterRetryAfterNeverNegative(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	rl.now = func() time.Time { return current }

	rl.Admit("user-a")

	// Just inside the window edge.
	current = current.Add(time.Minute - time.Millisecond)
	decision := rl.Admit("user-a")
	assert.False(t, decision.Allowed)
	assert.GreaterOrEqual(t, decision.RetryAfterSeconds, 0)
}

func TestRateLimiterIdentitiesAreIndependent(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.True(t, rl.Admit("user-a").Allowed)
	assert.False(t, rl.Admit("user-a").Allowed)
	assert.True(t, rl.Admit("user-b").Allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/gen", GenerateRateLimit(1, time.Minute), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	do := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/gen", nil)
		req.Header.Set("X-User-ID", userID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := do("user-a")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := do("user-a")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	var body struct {
		Success           bool   `json:"success"`
		Code              string `json:"code"`
		Error             string `json:"error"`
		RetryAfterSeconds int    `json:"retry_after_seconds"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "rate_limited", body.Code)
	assert.NotEmpty(t, body.Error)
	assert.GreaterOrEqual(t, body.RetryAfterSeconds, 0)

	// A different identity is unaffected by user-a's exhausted window.
	other := do("user-b")
	assert.Equal(t, http.StatusOK, other.Code)
}
