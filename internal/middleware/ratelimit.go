package middleware

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type client struct {
	limiter *rate.Limiter

	// lastSeen holds unix nanos; written on the request path and read by
	// the cleanup loop, so it must be atomic.
	lastSeen atomic.Int64
}

// RateLimiter tracks a token bucket per client IP.
type RateLimiter struct {
	clients sync.Map
	rps     rate.Limit
	burst   int
}

// NewRateLimiter creates a Gin middleware that applies per-IP rate
// limiting. rps is the steady-state request rate, burst the number of
// requests allowed to land at once.
func NewRateLimiter(rps rate.Limit, burst int) gin.HandlerFunc {
	rl := &RateLimiter{rps: rps, burst: burst}
	go rl.cleanupLoop()
	return rl.handle
}

func (rl *RateLimiter) getClient(ip string) *rate.Limiter {
	val, ok := rl.clients.Load(ip)
	if ok {
		cl := val.(*client)
		cl.lastSeen.Store(time.Now().UnixNano())
		return cl.limiter
	}

	cl := &client{limiter: rate.NewLimiter(rl.rps, rl.burst)}
	cl.lastSeen.Store(time.Now().UnixNano())
	rl.clients.Store(ip, cl)
	return cl.limiter
}

func (rl *RateLimiter) handle(c *gin.Context) {
	if !rl.getClient(c.ClientIP()).Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "too many requests, please try again later",
		})
		return
	}

	c.Next()
}

// cleanupLoop drops clients that have been idle for 3 minutes.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.clients.Range(func(key, value any) bool {
			lastSeen := time.Unix(0, value.(*client).lastSeen.Load())
			if time.Since(lastSeen) > 3*time.Minute {
				rl.clients.Delete(key)
			}
			return true
		})
	}
}
