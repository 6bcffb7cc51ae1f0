package dispatcher

import (
	"context"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/classifier"
)

// Dispatcher executes the tool sequence an intent maps to. It never returns
// an error: every failure mode is folded into the Outcome so the composer
// can degrade the reply instead of sinking the turn.
type Dispatcher interface {
	Dispatch(ctx context.Context, input Input) *Outcome
}

// Input is everything a turn's tool execution may draw arguments from.
type Input struct {
	Message    string
	Decision   *classifier.Decision
	SessionCtx *chat.SessionContext
	Prefs      *chat.UserPreferences
	Location   *chat.LocationData
}

// Outcome is the aggregate of a turn's tool executions.
type Outcome struct {
	// Results holds successful tool payloads keyed by tool name.
	Results map[string]interface{}

	// Summaries are the user-facing sentences of successful tools, in
	// execution order.
	Summaries []string

	// Records is the per-attempt audit trail, discarded after composition.
	Records []chat.ToolInvocationRecord

	// Attempted lists tool names in attempt order, one entry per tool.
	Attempted []string

	// Retried is true when any tool needed a second validation attempt.
	Retried bool

	// Failed is true when a required tool terminally failed.
	Failed bool

	// Clarification, when non-empty, is a question back to the user in
	// place of tool output (required context was missing).
	Clarification string

	// Patch accumulates the context mutations of successful tools.
	Patch chat.ContextPatch
}
