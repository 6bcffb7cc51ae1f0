package tools

import (
	"context"
	"fmt"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/plan"
)

// RecipeTool writes a full recipe for a meal in the session's plan. Read-only.
type RecipeTool struct {
	deps Deps
}

func NewRecipeTool(deps Deps) *RecipeTool {
	return &RecipeTool{deps: deps}
}

func (t *RecipeTool) Name() string { return "generate_meal_recipe" }

func (t *RecipeTool) Description() string {
	return "Produces ingredients and step-by-step instructions for a meal from the session's plan."
}

func (t *RecipeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meal_plan_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the plan the meal belongs to.",
			},
			"day": map[string]interface{}{
				"type":        "integer",
				"description": "1-based day of the meal. Defaults to the first match.",
			},
			"meal_type": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"breakfast", "lunch", "dinner", "snack"},
				"description": "Which meal to cook.",
			},
			"meal_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the meal, when the user said it explicitly.",
			},
		},
		"required": []string{"meal_plan_id"},
	}
}

func (t *RecipeTool) Mutating() bool { return false }

type recipeInput struct {
	MealPlanID string `json:"meal_plan_id"`
	Day        int    `json:"day"`
	MealType   string `json:"meal_type"`
	MealName   string `json:"meal_name"`
}

type generatedRecipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	PrepMinutes int      `json:"prep_time_minutes"`
	CookMinutes int      `json:"cook_time_minutes"`
}

func (t *RecipeTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	var in recipeInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, &chat.ValidationError{Tool: t.Name(), Reason: err.Error()}
	}

	mealPlan, err := loadPlan(ctx, t.deps.Repo, t.Name(), in.MealPlanID)
	if err != nil {
		return nil, err
	}

	meal, found := findMeal(mealPlan, in)
	if !found {
		return nil, &chat.ValidationError{
			Tool:   t.Name(),
			Field:  "meal_type",
			Reason: "no meal in the plan matches that day and meal type",
		}
	}

	request := fmt.Sprintf("Write a recipe for %q (%s). %s", meal.Name, meal.Type, meal.Description)
	if mealPlan.Dietary != "" {
		request += fmt.Sprintf(" It must stay %s.", mealPlan.Dietary)
	}

	var recipe generatedRecipe
	if err := generateJSON(ctx, t.deps.Generator, recipePrompt, request, recipeSchema(), &recipe); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	return &agent.Result{
		Data: recipe,
		Summary: fmt.Sprintf("Here's the recipe for %q: %d ingredients, about %d minutes total.",
			recipe.Name, len(recipe.Ingredients), recipe.PrepMinutes+recipe.CookMinutes),
	}, nil
}

// findMeal resolves the target meal by explicit name first, then by
// day/meal_type, then by meal_type alone.
func findMeal(mealPlan *plan.MealPlan, in recipeInput) (plan.Meal, bool) {
	for _, day := range mealPlan.Days {
		if in.Day != 0 && day.Day != in.Day {
			continue
		}
		for _, meal := range day.Meals {
			if in.MealName != "" && meal.Name == in.MealName {
				return meal, true
			}
			if in.MealName == "" && (in.MealType == "" || meal.Type == in.MealType) {
				return meal, true
			}
		}
	}
	return plan.Meal{}, false
}

func recipeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
			"ingredients": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"steps": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"prep_time_minutes": map[string]interface{}{"type": "integer"},
			"cook_time_minutes": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"name", "ingredients", "steps"},
	}
}

var _ agent.Tool = (*RecipeTool)(nil)
