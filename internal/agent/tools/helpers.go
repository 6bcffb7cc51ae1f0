package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/plan"
	"meal-planning-assistant/internal/plan/repository"
	"meal-planning-assistant/pkg/llmprovider"
)

// decodeArgs maps loose JSON-typed arguments onto a typed input struct.
func decodeArgs(args map[string]interface{}, out interface{}) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// generateJSON runs a schema-constrained generation and decodes the output.
func generateJSON(ctx context.Context, gen Generator, system, user string, schema map[string]interface{}, out interface{}) error {
	resp, err := gen.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: system}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: user}}},
		},
		Temperature:    generationTemperature,
		MaxTokens:      generationMaxTokens,
		ResponseSchema: schema,
	})
	if err != nil {
		return err
	}

	return decodeJSONText(resp.Text(), out)
}

// decodeJSONText parses model output as JSON, tolerating markdown fences.
func decodeJSONText(text string, out interface{}) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("%w: %v", llmprovider.ErrMalformedOutput, err)
	}
	return nil
}

// loadPlan fetches the referenced meal plan, mapping a stale id to a
// missing-context condition so the user gets a clarification, not an error.
func loadPlan(ctx context.Context, repo repository.Repository, toolName, planID string) (*plan.MealPlan, error) {
	p, err := repo.GetMealPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &chat.MissingContextError{Tool: toolName, Field: "meal_plan_id"}
		}
		return nil, &chat.ToolExecutionError{Tool: toolName, Err: err}
	}
	return p, nil
}
