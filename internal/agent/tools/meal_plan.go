package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/plan"
	"meal-planning-assistant/pkg/gcalendar"
)

// MealPlanTool generates a multi-day meal plan, persists it, and optionally
// exports the days to the user's calendar.
type MealPlanTool struct {
	deps Deps
}

func NewMealPlanTool(deps Deps) *MealPlanTool {
	return &MealPlanTool{deps: deps}
}

func (t *MealPlanTool) Name() string { return "generate_meal_plan" }

func (t *MealPlanTool) Description() string {
	return "Creates a new multi-day meal plan tailored to the user's dietary style, goal and allergies, and saves it."
}

func (t *MealPlanTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"days": map[string]interface{}{
				"type":        "integer",
				"description": "Number of days to plan, 1 to 14. Defaults to 3.",
			},
			"dietary": map[string]interface{}{
				"type":        "string",
				"description": "Dietary style, e.g. vegetarian, keto.",
			},
			"cuisine": map[string]interface{}{
				"type":        "string",
				"description": "Preferred cuisine, e.g. italian, vietnamese.",
			},
			"goal": map[string]interface{}{
				"type":        "string",
				"description": "Health goal, e.g. weight loss, muscle gain.",
			},
			"allergies": map[string]interface{}{
				"type":        "array",
				"description": "Ingredients to exclude.",
			},
			"export_to_calendar": map[string]interface{}{
				"type":        "boolean",
				"description": "Also add the plan's days to the user's calendar.",
			},
			"user_id": map[string]interface{}{
				"type": "string",
			},
		},
	}
}

func (t *MealPlanTool) Mutating() bool { return true }

type mealPlanInput struct {
	Days             int      `json:"days"`
	Dietary          string   `json:"dietary"`
	Cuisine          string   `json:"cuisine"`
	Goal             string   `json:"goal"`
	Allergies        []string `json:"allergies"`
	ExportToCalendar bool     `json:"export_to_calendar"`
	UserID           string   `json:"user_id"`
}

type generatedPlan struct {
	Title string `json:"title"`
	Days  []struct {
		Day   int `json:"day"`
		Meals []struct {
			Type        string `json:"type"`
			Name        string `json:"name"`
			Description string `json:"description"`
			Calories    int    `json:"calories"`
		} `json:"meals"`
	} `json:"days"`
}

func (t *MealPlanTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	var in mealPlanInput
	if err := decodeArgs(args, &in); err != nil {
		return nil, &chat.ValidationError{Tool: t.Name(), Reason: err.Error()}
	}
	if in.Days == 0 {
		in.Days = defaultPlanDays
	}
	if in.Days < 1 || in.Days > maxPlanDays {
		return nil, &chat.ValidationError{
			Tool:   t.Name(),
			Field:  "days",
			Reason: fmt.Sprintf("must be between 1 and %d", maxPlanDays),
		}
	}

	var generated generatedPlan
	if err := generateJSON(ctx, t.deps.Generator, mealPlanPrompt, t.buildRequest(in), planSchema(), &generated); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}
	if len(generated.Days) == 0 {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: fmt.Errorf("model produced an empty plan")}
	}

	now := time.Now().UTC()
	record := &plan.MealPlan{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     generated.Title,
		Dietary:   in.Dietary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, d := range generated.Days {
		day := plan.DayPlan{Day: d.Day}
		for _, m := range d.Meals {
			day.Meals = append(day.Meals, plan.Meal{
				Type:        m.Type,
				Name:        m.Name,
				Description: m.Description,
				Calories:    m.Calories,
			})
		}
		record.Days = append(record.Days, day)
	}

	if err := t.deps.Repo.CreateMealPlan(ctx, record); err != nil {
		return nil, &chat.ToolExecutionError{Tool: t.Name(), Err: err}
	}

	summary := fmt.Sprintf("Created %q, a %d-day plan.", record.Title, len(record.Days))
	if in.ExportToCalendar {
		if exported := t.exportToCalendar(ctx, record); exported > 0 {
			summary += fmt.Sprintf(" Added %d days to your calendar.", exported)
		}
	}

	return &agent.Result{
		Data:         record,
		Summary:      summary,
		ContextPatch: &chat.ContextPatch{MealPlanID: &record.ID},
	}, nil
}

func (t *MealPlanTool) buildRequest(in mealPlanInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day meal plan with breakfast, lunch and dinner each day.", in.Days)
	if in.Dietary != "" {
		fmt.Fprintf(&b, " Dietary style: %s.", in.Dietary)
	}
	if in.Cuisine != "" {
		fmt.Fprintf(&b, " Cuisine preference: %s.", in.Cuisine)
	}
	if in.Goal != "" {
		fmt.Fprintf(&b, " Goal: %s.", in.Goal)
	}
	if len(in.Allergies) > 0 {
		fmt.Fprintf(&b, " Strictly exclude: %s.", strings.Join(in.Allergies, ", "))
	}
	return b.String()
}

// exportToCalendar schedules each plan day as an all-day event starting
// tomorrow. Export failure degrades silently; the plan itself is saved.
func (t *MealPlanTool) exportToCalendar(ctx context.Context, record *plan.MealPlan) int {
	if t.deps.Calendar == nil {
		t.deps.Logger.Warn(ctx, "meal plan calendar export requested but no calendar configured")
		return 0
	}

	start := time.Now().AddDate(0, 0, 1)
	exported := 0
	for i, day := range record.Days {
		var meals []string
		for _, m := range day.Meals {
			meals = append(meals, fmt.Sprintf("%s: %s", m.Type, m.Name))
		}
		date := start.AddDate(0, 0, i)
		_, err := t.deps.Calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
			CalendarID:  t.deps.CalendarID,
			Summary:     fmt.Sprintf("%s (day %d)", record.Title, day.Day),
			Description: strings.Join(meals, "\n"),
			StartTime:   date,
			EndTime:     date.AddDate(0, 0, 1),
			Timezone:    t.deps.Timezone,
			AllDay:      true,
		})
		if err != nil {
			t.deps.Logger.Warn(ctx, "calendar export failed", "day", day.Day, "error", err.Error())
			continue
		}
		exported++
	}
	return exported
}

func planSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{"type": "string"},
			"days": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"day": map[string]interface{}{"type": "integer"},
						"meals": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"type":        map[string]interface{}{"type": "string"},
									"name":        map[string]interface{}{"type": "string"},
									"description": map[string]interface{}{"type": "string"},
									"calories":    map[string]interface{}{"type": "integer"},
								},
								"required": []string{"type", "name"},
							},
						},
					},
					"required": []string{"day", "meals"},
				},
			},
		},
		"required": []string{"title", "days"},
	}
}

var _ agent.Tool = (*MealPlanTool)(nil)
