package http

import (
	"github.com/gin-gonic/gin"

	"meal-planning-assistant/pkg/response"
)

// ProcessMessage godoc
// @Summary     Process a chat message
// @Description Classifies the message, runs the tools it requires, and returns a single reply with structured data and follow-up suggestions. Degrades instead of failing: model or tool trouble lowers confidence rather than producing an error status.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string            false "Authenticated user id from the gateway"
// @Param       body      body   processMessageReq true  "Chat message with optional history, preferences and location"
// @Success     200 {object} processMessageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/chat/messages [POST]
func (h *handler) ProcessMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessMessageReq(c)
	if err != nil {
		h.l.Warnf(ctx, "chat.http.ProcessMessage: bad request: %v", err)
		response.Error(c, err)
		return
	}

	result := h.uc.ProcessMessage(ctx, req.toInput())

	response.OK(c, h.newProcessMessageResp(result))
}
