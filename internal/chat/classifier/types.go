package classifier

import (
	"context"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/pkg/llmprovider"
)

// Decision is the classifier's verdict for a single user message.
type Decision struct {
	Intent    chat.Intent
	Source    chat.IntentSource
	Slots     map[string]interface{}
	Reasoning string
}

// Classifier determines what a message asks for and extracts tool arguments
// from free text.
type Classifier interface {
	// Classify maps a message to exactly one intent. Deterministic rules are
	// checked first; only when none match is the model consulted. The only
	// error it returns is chat.ErrModelUnavailable.
	Classify(ctx context.Context, message string, history []chat.ConversationTurn, sessionCtx *chat.SessionContext) (*Decision, error)

	// ExtractArgs asks the model for arguments matching the tool's parameter
	// schema. hint carries corrective text from a failed validation attempt
	// and may be empty.
	ExtractArgs(ctx context.Context, message string, toolName string, schema map[string]interface{}, hint string) (map[string]interface{}, error)
}

// Generator is the slice of the provider manager the classifier needs.
// Satisfied by *llmprovider.Manager.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
