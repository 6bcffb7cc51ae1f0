package chat

// Intent represents the classified purpose of a user message.
type Intent string

const (
	IntentMealPlan          Intent = "MEAL_PLAN_REQUIRED"
	IntentGroceryList       Intent = "GROCERY_LIST_REQUIRED"
	IntentNutritionAnalysis Intent = "NUTRITION_ANALYSIS_REQUIRED"
	IntentMealSwap          Intent = "MEAL_SWAP_REQUIRED"
	IntentRecipe            Intent = "RECIPE_REQUIRED"
	IntentPantryAnalysis    Intent = "PANTRY_ANALYSIS_REQUIRED"
	IntentConversational    Intent = "CONVERSATIONAL"
	IntentUnknown           Intent = "UNKNOWN"
)

// KnownIntents is the closed set the classifier may produce.
var KnownIntents = map[Intent]bool{
	IntentMealPlan:          true,
	IntentGroceryList:       true,
	IntentNutritionAnalysis: true,
	IntentMealSwap:          true,
	IntentRecipe:            true,
	IntentPantryAnalysis:    true,
	IntentConversational:    true,
	IntentUnknown:           true,
}

// IntentSource records how an intent was determined.
type IntentSource string

const (
	SourceRule  IntentSource = "rule"  // deterministic imperative match
	SourceModel IntentSource = "model" // LLM classification
)

// Confidence is a coarse three-level trust signal for a turn's result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConversationTurn is one message of the caller-owned history.
// The orchestrator only reads it.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// UserPreferences is pass-through personalization data from the preference store.
type UserPreferences struct {
	Dietary   string   `json:"dietary,omitempty"`
	Goal      string   `json:"goal,omitempty"`
	Cuisine   string   `json:"cuisine,omitempty"`
	Allergies []string `json:"allergies,omitempty"`
}

// LocationData is supplied by the location service; only grocery-list
// related tools consume it.
type LocationData struct {
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// SessionContext is the per-session carry-over state linking turns to
// previously created resources.
type SessionContext struct {
	SessionID       string
	UserID          string
	MealPlanID      string
	GroceryListID   string
	LastToolResults map[string]interface{}
}

// Clone returns a deep-enough copy safe to hand to a turn in flight.
func (sc *SessionContext) Clone() *SessionContext {
	cp := *sc
	cp.LastToolResults = make(map[string]interface{}, len(sc.LastToolResults))
	for k, v := range sc.LastToolResults {
		cp.LastToolResults[k] = v
	}
	return &cp
}

// ContextPatch is a merge request against a SessionContext. Nil pointer
// fields are left untouched; a pointer to the empty string is the explicit
// clear. ToolResults entries overwrite per tool name.
type ContextPatch struct {
	UserID        *string
	MealPlanID    *string
	GroceryListID *string
	ToolResults   map[string]interface{}
}

// InvocationOutcome is the terminal state of one dispatch attempt.
type InvocationOutcome string

const (
	OutcomeSuccess InvocationOutcome = "success"
	OutcomeRetried InvocationOutcome = "retried"
	OutcomeFailed  InvocationOutcome = "failed"
)

// ToolInvocationRecord is per-attempt bookkeeping within a single turn.
// Discarded after the turn completes.
type ToolInvocationRecord struct {
	ToolName string
	Args     map[string]interface{}
	Attempt  int
	Outcome  InvocationOutcome
	Result   interface{}
	Err      error
}

// DebugInfo is the fixed-field telemetry attached to every result.
type DebugInfo struct {
	Intent         Intent   `json:"intent"`
	Retried        bool     `json:"retried"`
	ToolsAttempted []string `json:"tools_attempted"`
}

// OrchestrationResult is the single reply object returned per turn.
type OrchestrationResult struct {
	SessionID      string                 `json:"session_id"`
	Response       string                 `json:"response"`
	StructuredData map[string]interface{} `json:"structured_data,omitempty"`
	Suggestions    []string               `json:"suggestions,omitempty"`
	ToolResults    map[string]interface{} `json:"tool_results,omitempty"`
	Confidence     Confidence             `json:"confidence"`
	Debug          *DebugInfo             `json:"debug,omitempty"`
}

// ProcessMessageInput is the single entry-point input.
type ProcessMessageInput struct {
	Message             string
	UserID              string
	SessionID           string
	ConversationHistory []ConversationTurn
	UserPreferences     *UserPreferences
	LocationData        *LocationData
}
