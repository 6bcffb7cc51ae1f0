package repository

import (
	"context"

	"meal-planning-assistant/internal/plan"
)

// Repository persists meal plans and grocery lists. The orchestration layer
// only ever carries the returned ids; it never inspects storage internals.
type Repository interface {
	CreateMealPlan(ctx context.Context, p *plan.MealPlan) error
	GetMealPlan(ctx context.Context, id string) (*plan.MealPlan, error)
	UpdateMealPlan(ctx context.Context, p *plan.MealPlan) error

	CreateGroceryList(ctx context.Context, g *plan.GroceryList) error
	GetGroceryList(ctx context.Context, id string) (*plan.GroceryList, error)
}
