package tools

import (
	"context"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/plan/repository"
	"meal-planning-assistant/pkg/gcalendar"
	"meal-planning-assistant/pkg/llmprovider"
	"meal-planning-assistant/pkg/log"
)

// Generator is the slice of the provider manager the tools need.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// CalendarExporter pushes meal days to an external calendar. Satisfied by
// *gcalendar.Client; nil disables export.
type CalendarExporter interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

// Deps carries the shared dependencies of the tool set.
type Deps struct {
	Logger    log.Logger
	Generator Generator
	Repo      repository.Repository

	// Calendar export is optional. CalendarID/Timezone are only read when
	// Calendar is set.
	Calendar   CalendarExporter
	CalendarID string
	Timezone   string
}

// RegisterAll registers the fixed tool set. Membership is established here
// once at startup.
func RegisterAll(registry *agent.Registry, deps Deps) {
	registry.Register(NewMealPlanTool(deps))
	registry.Register(NewGroceryListTool(deps))
	registry.Register(NewNutritionTool(deps))
	registry.Register(NewSwapMealTool(deps))
	registry.Register(NewPantryTool(deps))
	registry.Register(NewRecipeTool(deps))
}
