package composer

import (
	"testing"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/classifier"
	"meal-planning-assistant/internal/chat/dispatcher"
)

func successOutcome(tool string) *dispatcher.Outcome {
	return &dispatcher.Outcome{
		Results:   map[string]interface{}{tool: map[string]interface{}{"id": "x"}},
		Summaries: []string{"Created your 3-day plan."},
		Attempted: []string{tool},
	}
}

func TestCompose_RuleSuccessIsHighConfidence(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentMealPlan, Source: chat.SourceRule}

	result := c.Compose(decision, successOutcome("generate_meal_plan"), "")

	if result.Confidence != chat.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", result.Confidence)
	}
	if result.Response != "Created your 3-day plan." {
		t.Errorf("unexpected response %q", result.Response)
	}
	if result.StructuredData["generate_meal_plan"] == nil {
		t.Error("structured data missing tool payload")
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected follow-up suggestions")
	}
}

func TestCompose_ModelSuccessIsMediumConfidence(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentMealPlan, Source: chat.SourceModel}

	result := c.Compose(decision, successOutcome("generate_meal_plan"), "")

	if result.Confidence != chat.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium", result.Confidence)
	}
}

func TestCompose_UnknownIsLowConfidence(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentUnknown, Source: chat.SourceModel}

	result := c.Compose(decision, &dispatcher.Outcome{}, "")

	if result.Confidence != chat.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.Confidence)
	}
	if result.Response != unknownReply {
		t.Errorf("unexpected response %q", result.Response)
	}
}

func TestCompose_FailedToolIsLowConfidence(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentMealPlan, Source: chat.SourceRule}
	outcome := &dispatcher.Outcome{Failed: true, Attempted: []string{"generate_meal_plan"}}

	result := c.Compose(decision, outcome, "")

	if result.Confidence != chat.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.Confidence)
	}
	if result.Response != failureReply {
		t.Errorf("unexpected response %q", result.Response)
	}
	if result.Suggestions != nil {
		t.Error("failed turns should not suggest follow-ups")
	}
}

func TestCompose_ClarificationPassesThrough(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentGroceryList, Source: chat.SourceRule}
	outcome := &dispatcher.Outcome{
		Clarification: "I don't see a meal plan yet.",
		Attempted:     []string{"generate_grocery_list"},
	}

	result := c.Compose(decision, outcome, "")

	if result.Response != "I don't see a meal plan yet." {
		t.Errorf("unexpected response %q", result.Response)
	}
	if result.Confidence != chat.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.Confidence)
	}
}

func TestCompose_ToolIntentWithoutResultsIsLow(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentMealPlan, Source: chat.SourceRule}

	result := c.Compose(decision, &dispatcher.Outcome{}, "")

	if result.Confidence != chat.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.Confidence)
	}
}

func TestCompose_ConversationalUsesModelText(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentConversational, Source: chat.SourceModel}

	result := c.Compose(decision, &dispatcher.Outcome{}, "Hello! How can I help?")

	if result.Response != "Hello! How can I help?" {
		t.Errorf("unexpected response %q", result.Response)
	}
	if result.Confidence != chat.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium", result.Confidence)
	}
	if result.ToolResults != nil {
		t.Error("conversational turn must have empty tool results")
	}
}

func TestCompose_DebugAlwaysAttached(t *testing.T) {
	c := New()
	decision := &classifier.Decision{Intent: chat.IntentConversational, Source: chat.SourceModel}
	outcome := &dispatcher.Outcome{Retried: true, Attempted: []string{"a", "b"}}

	result := c.Compose(decision, outcome, "hi")

	if result.Debug == nil {
		t.Fatal("debug info missing")
	}
	if result.Debug.Intent != chat.IntentConversational || !result.Debug.Retried {
		t.Errorf("unexpected debug: %+v", result.Debug)
	}
	if len(result.Debug.ToolsAttempted) != 2 {
		t.Errorf("tools attempted = %v", result.Debug.ToolsAttempted)
	}
}
