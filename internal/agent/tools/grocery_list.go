package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/plan"
)

// GroceryListTool derives a consolidated shopping list from an existing
// meal plan and persists it.
type GroceryListTool struct {
	deps Deps
}

func NewGroceryListTool(deps Deps) *GroceryListTool {
	return &GroceryListTool{deps: deps}
}

func (t *GroceryListTool) Name() string { return "generate_grocery_list" }

func (t *GroceryListTool) Description() string {
	return "Builds a categorized grocery list with cost estimates from the session's meal plan."
}

func (t *GroceryListTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meal_plan_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the meal plan to shop for.",
			},
			"currency": map[string]interface{}{
				"type":        "string",
				"description": "Currency code for cost estimates, e.g. USD.",
			},
			"user_id": map[string]interface{}{
				"type": "string",
			},
		},
		"required": []string{"meal_plan_id"},
	}
}

func (t *GroceryListTool) Mutating() bool { return true }

type groceryListInput struct {
	MealPlanID string `json:"meal_plan_id"`
	Currency   string `json:"currency"`
	UserID     string `json:"user_id"`
}

type generatedGroceryList struct {
	Categories []struct {
		Name  string `json:"name"`
		Items []struct {
			Name          string  `json:"name"`
			Quantity      string  `json:"quantity"`
			EstimatedCost float64 `json:"estimated_cost"`
		} `json:"items"`
	} `json:"categories"`
	EstimatedTotal float64 `json:"estimated_total"`
}

func (t *GroceryListTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	var in groceryListInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, &chat.ValidationError{Tool: t.Name(), Reason: err.Error()}
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	mealPlan, err := loadPlan(ctx, t.deps.Repo, t.Name(), in.MealPlanID)
	if err != nil {
		return nil, err
	}

	planJSON, _ := json.Marshal(mealPlan.Days)
	request := fmt.Sprintf("Meal plan %q:\n%s\n\nEstimate costs in %s.", mealPlan.Title, planJSON, in.Currency)

	var generated generatedGroceryList
	if err := generateJSON(ctx, t.deps.Generator, groceryListPrompt, request, grocerySchema(), &generated); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}
	if len(generated.Categories) == 0 {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: fmt.Errorf("model produced an empty list")}
	}

	record := &plan.GroceryList{
		ID:             uuid.NewString(),
		MealPlanID:     mealPlan.ID,
		UserID:         in.UserID,
		Currency:       in.Currency,
		EstimatedTotal: generated.EstimatedTotal,
		CreatedAt:      time.Now().UTC(),
	}
	itemCount := 0
	for _, c := range generated.Categories {
		cat := plan.GroceryCategory{Name: c.Name}
		for _, item := range c.Items {
			cat.Items = append(cat.Items, plan.GroceryItem{
				Name:          item.Name,
				Quantity:      item.Quantity,
				EstimatedCost: item.EstimatedCost,
			})
			itemCount++
		}
		record.Categories = append(record.Categories, cat)
	}

	if err := t.deps.Repo.CreateGroceryList(ctx, record); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	summary := fmt.Sprintf("Your grocery list is ready: %d items across %d categories", itemCount, len(record.Categories))
	if record.EstimatedTotal > 0 {
		summary += fmt.Sprintf(", roughly %.2f %s", record.EstimatedTotal, record.Currency)
	}
	summary += "."

	return &agent.Result{
		Data:         record,
		Summary:      summary,
		ContextPatch: &chat.ContextPatch{GroceryListID: &record.ID},
	}, nil
}

func grocerySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"categories": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string"},
						"items": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"name":           map[string]interface{}{"type": "string"},
									"quantity":       map[string]interface{}{"type": "string"},
									"estimated_cost": map[string]interface{}{"type": "number"},
								},
								"required": []string{"name"},
							},
						},
					},
					"required": []string{"name", "items"},
				},
			},
			"estimated_total": map[string]interface{}{"type": "number"},
		},
		"required": []string{"categories"},
	}
}

var _ agent.Tool = (*GroceryListTool)(nil)
