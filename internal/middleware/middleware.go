package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter caps mutating requests per client over a sliding window:
// up to burst hits within the window, older hits aging out as the window
// slides. Reads are never throttled; the router mounts this only on the
// routes that change state.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	window time.Duration
	burst  int
	now    func() time.Time
}

func NewRateLimiter(window time.Duration, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		hits:   make(map[string][]time.Time),
		window: window,
		burst:  burst,
		now:    time.Now,
	}
}

// allow records a hit for the client unless the window is already full.
// Expired hits are pruned in place, so per-client memory stays bounded by
// the burst size.
func (r *RateLimiter) allow(client string) bool {
	now := r.now()
	cutoff := now.Add(-r.window)

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.hits[client][:0]
	for _, hit := range r.hits[client] {
		if hit.After(cutoff) {
			kept = append(kept, hit)
		}
	}
	if len(kept) >= r.burst {
		r.hits[client] = kept
		return false
	}
	r.hits[client] = append(kept, now)
	return true
}

// Middleware keys clients by the X-Client-ID header, falling back to the
// peer address for clients that do not send one.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.GetHeader("X-Client-ID")
		if client == "" {
			client = c.ClientIP()
		}
		if !r.allow(client) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
