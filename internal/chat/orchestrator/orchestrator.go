package orchestrator

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/dispatcher"
	"meal-planning-assistant/pkg/llmprovider"
)

func (uc *implUseCase) ProcessMessage(ctx context.Context, input chat.ProcessMessageInput) (result chat.OrchestrationResult) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// The contract is that a turn never fails outright. A panic anywhere in
	// the pipeline degrades to the fixed fallback reply.
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "orchestrator.ProcessMessage: recovered from panic: %v", r)
			result = uc.fallbackResult(sessionID)
		}
	}()

	sessionCtx := uc.store.Get(sessionID)
	if input.UserID != "" && sessionCtx.UserID == "" {
		sessionCtx.UserID = input.UserID
	}

	decision, err := uc.classifier.Classify(ctx, input.Message, input.ConversationHistory, sessionCtx)
	if err != nil {
		if errors.Is(err, chat.ErrModelUnavailable) {
			uc.l.Error(ctx, "orchestrator.ProcessMessage: model unavailable, returning fallback", "session_id", sessionID)
			return uc.fallbackResult(sessionID)
		}
		// Classify only reports model unavailability; anything else is a bug,
		// handled the same way rather than surfaced to the user.
		uc.l.Errorf(ctx, "orchestrator.ProcessMessage: unexpected classify error: %v", err)
		return uc.fallbackResult(sessionID)
	}

	uc.l.Info(ctx, "orchestrator.ProcessMessage: classified",
		"session_id", sessionID,
		"intent", decision.Intent,
		"source", decision.Source,
	)

	outcome := uc.dispatcher.Dispatch(ctx, dispatcher.Input{
		Message:    input.Message,
		Decision:   decision,
		SessionCtx: sessionCtx,
		Prefs:      input.UserPreferences,
		Location:   input.LocationData,
	})

	uc.persistContext(sessionID, input.UserID, outcome)

	var modelText string
	if len(outcome.Attempted) == 0 && decision.Intent != chat.IntentUnknown {
		modelText = uc.conversationalReply(ctx, input)
	}

	result = uc.composer.Compose(decision, outcome, modelText)
	result.SessionID = sessionID
	return result
}

// persistContext merges the turn's patch into the session store. The user id
// is carried so later turns can attribute saved plans.
func (uc *implUseCase) persistContext(sessionID, userID string, outcome *dispatcher.Outcome) {
	patch := outcome.Patch
	if userID != "" {
		patch.UserID = &userID
	}
	if patch.UserID == nil && patch.MealPlanID == nil && patch.GroceryListID == nil && len(patch.ToolResults) == 0 {
		return
	}
	uc.store.Update(sessionID, patch)
}

// conversationalReply makes the single model call a tool-free turn gets.
// Failure here never degrades the turn; the composer has fixed fallback text.
func (uc *implUseCase) conversationalReply(ctx context.Context, input chat.ProcessMessageInput) string {
	messages := make([]llmprovider.Message, 0, len(input.ConversationHistory)+1)
	for _, turn := range input.ConversationHistory {
		role := turn.Role
		if role != "user" && role != "assistant" {
			role = "user"
		}
		messages = append(messages, llmprovider.Message{
			Role:  role,
			Parts: []llmprovider.Part{{Text: turn.Content}},
		})
	}
	messages = append(messages, llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: input.Message}},
	})

	resp, err := uc.generator.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: conversationalPrompt}},
		},
		Messages:    messages,
		Temperature: conversationalTemperature,
		MaxTokens:   conversationalMaxTokens,
	})
	if err != nil {
		uc.l.Warn(ctx, "orchestrator.conversationalReply: model call failed, using canned text", "error", err.Error())
		return ""
	}
	return resp.Text()
}

func (uc *implUseCase) fallbackResult(sessionID string) chat.OrchestrationResult {
	return chat.OrchestrationResult{
		SessionID:  sessionID,
		Response:   fallbackReply,
		Confidence: chat.ConfidenceLow,
		Debug: &chat.DebugInfo{
			Intent:         chat.IntentUnknown,
			ToolsAttempted: []string{},
		},
	}
}
