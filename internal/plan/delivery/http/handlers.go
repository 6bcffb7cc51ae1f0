package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/plan/repository"
	"meal-planning-assistant/pkg/response"
)

// GetMealPlan godoc
// @Summary     Get a meal plan
// @Description Returns a saved meal plan by id.
// @Tags        Plans
// @Produce     json
// @Param       id path string true "Meal plan id"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/plans/{id} [GET]
func (h *handler) GetMealPlan(c *gin.Context) {
	ctx := c.Request.Context()

	mealPlan, err := h.repo.GetMealPlan(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "meal plan not found")
			return
		}
		h.l.Errorf(ctx, "plan.http.GetMealPlan: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, mealPlan)
}

// GetGroceryList godoc
// @Summary     Get a grocery list
// @Description Returns a saved grocery list by id.
// @Tags        Plans
// @Produce     json
// @Param       id path string true "Grocery list id"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/grocery-lists/{id} [GET]
func (h *handler) GetGroceryList(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.repo.GetGroceryList(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "grocery list not found")
			return
		}
		h.l.Errorf(ctx, "plan.http.GetGroceryList: %v", err)
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}
