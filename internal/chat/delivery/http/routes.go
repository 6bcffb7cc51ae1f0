package http

import (
	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/middleware"
)

// RegisterRoutes maps the chat endpoints. Message processing is the only
// rate-limited surface; it is the one doing model calls.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	messages := rg.Group("/chat")
	{
		messages.POST("/messages", mw.Identity(), mw.RateLimit(), h.ProcessMessage)
	}
}
