package http

import (
	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/middleware"
)

// RegisterRoutes maps the plan read endpoints.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("/plans/:id", mw.Identity(), h.GetMealPlan)
	rg.GET("/grocery-lists/:id", mw.Identity(), h.GetGroceryList)
}
