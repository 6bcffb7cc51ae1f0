package tools

import (
	"context"
	"fmt"
	"time"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/plan"
)

// SwapMealTool replaces one meal in an existing plan and saves the change.
type SwapMealTool struct {
	deps Deps
}

func NewSwapMealTool(deps Deps) *SwapMealTool {
	return &SwapMealTool{deps: deps}
}

func (t *SwapMealTool) Name() string { return "swap_meal" }

func (t *SwapMealTool) Description() string {
	return "Replaces a specific meal in the session's meal plan with a comparable alternative."
}

func (t *SwapMealTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meal_plan_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the plan to modify.",
			},
			"day": map[string]interface{}{
				"type":        "integer",
				"description": "1-based day of the meal to swap.",
			},
			"meal_type": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"breakfast", "lunch", "dinner", "snack"},
				"description": "Which meal of the day to swap.",
			},
			"reason": map[string]interface{}{
				"type":        "string",
				"description": "Why the user wants something else.",
			},
		},
		"required": []string{"meal_plan_id", "day", "meal_type"},
	}
}

func (t *SwapMealTool) Mutating() bool { return true }

type swapMealInput struct {
	MealPlanID string `json:"meal_plan_id"`
	Day        int    `json:"day"`
	MealType   string `json:"meal_type"`
	Reason     string `json:"reason"`
}

type replacementMeal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
}

func (t *SwapMealTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	var in swapMealInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, &chat.ValidationError{Tool: t.Name(), Reason: err.Error()}
	}

	mealPlan, err := loadPlan(ctx, t.deps.Repo, t.Name(), in.MealPlanID)
	if err != nil {
		return nil, err
	}

	dayIdx, mealIdx := -1, -1
	for di, day := range mealPlan.Days {
		if day.Day != in.Day {
			continue
		}
		dayIdx = di
		for mi, meal := range day.Meals {
			if meal.Type == in.MealType {
				mealIdx = mi
				break
			}
		}
		break
	}
	if dayIdx < 0 {
		return nil, &chat.ValidationError{
			Tool:   t.Name(),
			Field:  "day",
			Reason: fmt.Sprintf("plan has no day %d (it covers %d days)", in.Day, len(mealPlan.Days)),
		}
	}
	if mealIdx < 0 {
		return nil, &chat.ValidationError{
			Tool:   t.Name(),
			Field:  "meal_type",
			Reason: fmt.Sprintf("day %d has no %s", in.Day, in.MealType),
		}
	}

	old := mealPlan.Days[dayIdx].Meals[mealIdx]
	request := fmt.Sprintf("Replace this %s: %q (%d kcal, %s). Dietary style: %s.",
		old.Type, old.Name, old.Calories, old.Description, mealPlan.Dietary)
	if in.Reason != "" {
		request += fmt.Sprintf(" The user's reason: %s.", in.Reason)
	}

	var replacement replacementMeal
	if err := generateJSON(ctx, t.deps.Generator, swapMealPrompt, request, swapSchema(), &replacement); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	mealPlan.Days[dayIdx].Meals[mealIdx] = plan.Meal{
		Type:        old.Type,
		Name:        replacement.Name,
		Description: replacement.Description,
		Calories:    replacement.Calories,
	}
	mealPlan.UpdatedAt = time.Now().UTC()

	if err := t.deps.Repo.UpdateMealPlan(ctx, mealPlan); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	return &agent.Result{
		Data: map[string]interface{}{
			"meal_plan_id": mealPlan.ID,
			"day":          in.Day,
			"meal_type":    in.MealType,
			"old_meal":     old,
			"new_meal":     mealPlan.Days[dayIdx].Meals[mealIdx],
		},
		Summary: fmt.Sprintf("Swapped day %d %s: %q is now %q.", in.Day, in.MealType, old.Name, replacement.Name),
	}, nil
}

func swapSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":        map[string]interface{}{"type": "string"},
			"description": map[string]interface{}{"type": "string"},
			"calories":    map[string]interface{}{"type": "integer"},
		},
		"required": []string{"name", "description"},
	}
}

var _ agent.Tool = (*SwapMealTool)(nil)
