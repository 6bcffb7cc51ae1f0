package http

import (
	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/middleware"
)

// processMessageReq binds and validates the chat message request body and
// attaches the authenticated user id from the request scope.
func (h *handler) processProcessMessageReq(c *gin.Context) (processMessageReq, error) {
	var req processMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.UserID = middleware.ScopeFrom(c).UserID
	return req, req.validate()
}
