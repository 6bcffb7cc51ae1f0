package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
)

// NutritionTool analyzes an existing meal plan. Read-only.
type NutritionTool struct {
	deps Deps
}

func NewNutritionTool(deps Deps) *NutritionTool {
	return &NutritionTool{deps: deps}
}

func (t *NutritionTool) Name() string { return "analyze_nutrition" }

func (t *NutritionTool) Description() string {
	return "Estimates calories and macro split for the session's meal plan and flags nutritional gaps."
}

func (t *NutritionTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meal_plan_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the meal plan to analyze.",
			},
			"focus": map[string]interface{}{
				"type":        "string",
				"description": "Optional angle, e.g. protein, sodium.",
			},
		},
		"required": []string{"meal_plan_id"},
	}
}

func (t *NutritionTool) Mutating() bool { return false }

type nutritionInput struct {
	MealPlanID string `json:"meal_plan_id"`
	Focus      string `json:"focus"`
}

type nutritionAnalysis struct {
	TotalCalories int `json:"total_calories"`
	DailyAverage  int `json:"daily_average"`
	Macros        struct {
		ProteinG int `json:"protein_g"`
		CarbsG   int `json:"carbs_g"`
		FatG     int `json:"fat_g"`
	} `json:"macros"`
	Highlights []string `json:"highlights"`
	Summary    string   `json:"summary"`
}

func (t *NutritionTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	var in nutritionInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, &chat.ValidationError{Tool: t.Name(), Reason: err.Error()}
	}

	mealPlan, err := loadPlan(ctx, t.deps.Repo, t.Name(), in.MealPlanID)
	if err != nil {
		return nil, err
	}

	planJSON, _ := json.Marshal(mealPlan.Days)
	request := fmt.Sprintf("Analyze this meal plan:\n%s", planJSON)
	if in.Focus != "" {
		request += fmt.Sprintf("\nPay special attention to: %s.", in.Focus)
	}

	var analysis nutritionAnalysis
	if err := generateJSON(ctx, t.deps.Generator, nutritionPrompt, request, nutritionSchema(), &analysis); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	summary := analysis.Summary
	if summary == "" {
		summary = fmt.Sprintf("Your plan averages about %d calories a day.", analysis.DailyAverage)
	}

	return &agent.Result{Data: analysis, Summary: summary}, nil
}

func nutritionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"total_calories": map[string]interface{}{"type": "integer"},
			"daily_average":  map[string]interface{}{"type": "integer"},
			"macros": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"protein_g": map[string]interface{}{"type": "integer"},
					"carbs_g":   map[string]interface{}{"type": "integer"},
					"fat_g":     map[string]interface{}{"type": "integer"},
				},
			},
			"highlights": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"summary": map[string]interface{}{"type": "string"},
		},
		"required": []string{"total_calories", "daily_average", "summary"},
	}
}

var _ agent.Tool = (*NutritionTool)(nil)
