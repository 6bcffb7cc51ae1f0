package middleware

import (
	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/model"
)

// HeaderUserID carries the authenticated user id set by the upstream auth
// gateway. Authentication itself happens before this service.
const HeaderUserID = "X-User-ID"

// ScopeKey is the gin context key the request scope is stored under.
const ScopeKey = "scope"

// Identity resolves the request scope from upstream headers. Anonymous
// requests pass through with an empty user id.
func (m Middleware) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ScopeKey, model.Scope{
			UserID:    c.GetHeader(HeaderUserID),
			RequestID: c.GetString("request_id"),
		})
		c.Next()
	}
}

// ScopeFrom extracts the request scope set by Identity. The zero scope is
// returned when the middleware did not run.
func ScopeFrom(c *gin.Context) model.Scope {
	if v, ok := c.Get(ScopeKey); ok {
		if scope, ok := v.(model.Scope); ok {
			return scope
		}
	}
	return model.Scope{}
}
