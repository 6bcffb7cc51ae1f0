package composer

import (
	"strings"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/classifier"
	"meal-planning-assistant/internal/chat/dispatcher"
)

// Composer assembles the single reply object for a turn from the classifier
// decision, the dispatch outcome, and optional model-written reply text.
type Composer interface {
	Compose(decision *classifier.Decision, outcome *dispatcher.Outcome, modelText string) chat.OrchestrationResult
}

type implComposer struct{}

// New builds the composer. It is stateless.
func New() Composer {
	return &implComposer{}
}

func (c *implComposer) Compose(decision *classifier.Decision, outcome *dispatcher.Outcome, modelText string) chat.OrchestrationResult {
	result := chat.OrchestrationResult{
		Confidence: confidenceFor(decision, outcome),
		Debug: &chat.DebugInfo{
			Intent:         decision.Intent,
			Retried:        outcome.Retried,
			ToolsAttempted: append([]string{}, outcome.Attempted...),
		},
	}

	if len(outcome.Results) > 0 {
		result.ToolResults = outcome.Results
		result.StructuredData = outcome.Results
	}

	result.Response = replyText(decision, outcome, modelText)
	result.Suggestions = suggestionsFor(decision.Intent, outcome)
	return result
}

// confidenceFor applies the three-level policy: rule-sourced intents with
// clean tool runs are high; model-sourced successes are medium; UNKNOWN,
// clarifications and failed required tools are low.
func confidenceFor(decision *classifier.Decision, outcome *dispatcher.Outcome) chat.Confidence {
	if decision.Intent == chat.IntentUnknown {
		return chat.ConfidenceLow
	}
	if outcome.Failed || outcome.Clarification != "" {
		return chat.ConfidenceLow
	}

	// Tool intents that somehow produced no tool output are suspect.
	if requiresTools(decision.Intent) && len(outcome.Results) == 0 {
		return chat.ConfidenceLow
	}

	if decision.Source == chat.SourceRule {
		return chat.ConfidenceHigh
	}
	return chat.ConfidenceMedium
}

func requiresTools(intent chat.Intent) bool {
	switch intent {
	case chat.IntentConversational, chat.IntentUnknown:
		return false
	default:
		return true
	}
}

func replyText(decision *classifier.Decision, outcome *dispatcher.Outcome, modelText string) string {
	if outcome.Clarification != "" {
		return outcome.Clarification
	}

	if outcome.Failed {
		return failureReply
	}

	if decision.Intent == chat.IntentUnknown {
		return unknownReply
	}

	// Tool turns compose from the tools' own summaries so that reply text
	// can never depend on a second model call succeeding.
	if len(outcome.Summaries) > 0 {
		return strings.Join(outcome.Summaries, " ")
	}

	if modelText != "" {
		return modelText
	}
	return conversationalReply
}

func suggestionsFor(intent chat.Intent, outcome *dispatcher.Outcome) []string {
	if outcome.Failed || outcome.Clarification != "" {
		return nil
	}

	switch intent {
	case chat.IntentMealPlan:
		return []string{
			"Generate my grocery list",
			"How many calories is this plan?",
			"Swap a meal I don't like",
		}
	case chat.IntentGroceryList:
		return []string{
			"Estimate the total cost",
			"Show me a recipe from the plan",
		}
	case chat.IntentMealSwap:
		return []string{
			"Regenerate my grocery list",
			"How does this change my calories?",
		}
	case chat.IntentNutritionAnalysis:
		return []string{
			"Swap a high-calorie meal",
			"Make me a lighter plan",
		}
	case chat.IntentRecipe, chat.IntentPantryAnalysis:
		return []string{
			"Make me a meal plan",
			"Generate a grocery list",
		}
	default:
		return nil
	}
}
