package middleware

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"meal-planning-assistant/pkg/log"
)

// Middleware bundles the cross-cutting HTTP middlewares.
type Middleware struct {
	l         log.Logger
	perMinute int
	limiters  *lru.Cache[string, *rate.Limiter]
}

// limiterCacheSize bounds how many client buckets are tracked at once.
const limiterCacheSize = 4096

// New builds the middleware set. ratePerMinute caps chat requests per
// client; zero disables rate limiting.
func New(l log.Logger, ratePerMinute int) Middleware {
	cache, _ := lru.New[string, *rate.Limiter](limiterCacheSize)
	return Middleware{
		l:         l,
		perMinute: ratePerMinute,
		limiters:  cache,
	}
}
