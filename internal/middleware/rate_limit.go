package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"meal-planning-assistant/pkg/response"
)

// RateLimit enforces a per-client request budget using a token bucket per
// client IP. Buckets are evicted LRU when too many clients are tracked.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.perMinute <= 0 {
			c.Next()
			return
		}

		key := c.ClientIP()
		limiter, ok := m.limiters.Get(key)
		if !ok {
			limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.perMinute)), m.perMinute)
			m.limiters.Add(key, limiter)
		}

		if !limiter.Allow() {
			m.l.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", key)
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
