package tools

import (
	"context"
	"fmt"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/pkg/llmprovider"
)

// PantryTool suggests meals from what the user has on hand, from a text
// description or an attached photo. Read-only.
type PantryTool struct {
	deps Deps
}

func NewPantryTool(deps Deps) *PantryTool {
	return &PantryTool{deps: deps}
}

func (t *PantryTool) Name() string { return "analyze_pantry_image" }

func (t *PantryTool) Description() string {
	return "Identifies ingredients from a pantry photo or description and suggests meals the user can make now."
}

func (t *PantryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"description": map[string]interface{}{
				"type":        "string",
				"description": "The user's description of what they have.",
			},
			"image_data": map[string]interface{}{
				"type":        "string",
				"description": "Base64-encoded pantry photo, if one was attached.",
			},
			"image_mime": map[string]interface{}{
				"type":        "string",
				"description": "MIME type of the attached photo, e.g. image/jpeg.",
			},
		},
		"required": []string{"description"},
	}
}

func (t *PantryTool) Mutating() bool { return false }

type pantryInput struct {
	Description string `json:"description"`
	ImageData   string `json:"image_data"`
	ImageMIME   string `json:"image_mime"`
}

type pantryAnalysis struct {
	DetectedItems []string `json:"detected_items"`
	MealIdeas     []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"meal_ideas"`
	MissingStaples []string `json:"missing_staples"`
}

func (t *PantryTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	var in pantryInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, &chat.ValidationError{Tool: t.Name(), Reason: err.Error()}
	}

	parts := []llmprovider.Part{{Text: in.Description}}
	if in.ImageData != "" {
		mime := in.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, llmprovider.Part{
			InlineData: &llmprovider.InlineData{MIMEType: mime, Data: in.ImageData},
		})
	}

	resp, err := t.deps.Generator.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: pantryPrompt}},
		},
		Messages:       []llmprovider.Message{{Role: "user", Parts: parts}},
		Temperature:    generationTemperature,
		MaxTokens:      generationMaxTokens,
		ResponseSchema: pantrySchema(),
	})
	if err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	var analysis pantryAnalysis
	if err := decodeJSONText(resp.Text(), &analysis); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	summary := fmt.Sprintf("I spotted %d ingredients and have %d meal ideas for you.",
		len(analysis.DetectedItems), len(analysis.MealIdeas))

	return &agent.Result{Data: analysis, Summary: summary}, nil
}

func pantrySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"detected_items": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"meal_ideas": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":        map[string]interface{}{"type": "string"},
						"description": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name"},
				},
			},
			"missing_staples": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"detected_items", "meal_ideas"},
	}
}

var _ agent.Tool = (*PantryTool)(nil)
