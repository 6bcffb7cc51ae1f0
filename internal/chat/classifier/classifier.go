package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/pkg/llmprovider"
)

func (c *implClassifier) Classify(ctx context.Context, message string, history []chat.ConversationTurn, sessionCtx *chat.SessionContext) (*Decision, error) {
	if d, ok := classifyByRule(message, sessionCtx); ok {
		c.l.Debug(ctx, "classifier.Classify: rule match", "intent", d.Intent, "reasoning", d.Reasoning)
		return d, nil
	}

	d, err := c.classifyByModel(ctx, message, history)
	if err != nil {
		if errors.Is(err, llmprovider.ErrAllProvidersFailed) || errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			return nil, chat.ErrModelUnavailable
		}
		// Model answered but unparseably. Treat as UNKNOWN, not a turn failure.
		c.l.Warn(ctx, "classifier.Classify: unparseable model output, clamping to UNKNOWN", "error", err.Error())
		return &Decision{Intent: chat.IntentUnknown, Source: chat.SourceModel, Slots: map[string]interface{}{}}, nil
	}
	return d, nil
}

type classifyResult struct {
	Intent    string                 `json:"intent"`
	Slots     map[string]interface{} `json:"slots"`
	Reasoning string                 `json:"reasoning"`
}

func (c *implClassifier) classifyByModel(ctx context.Context, message string, history []chat.ConversationTurn) (*Decision, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: classifyPrompt}},
		},
		Messages:       buildMessages(message, history),
		Temperature:    classifyTemperature,
		MaxTokens:      classifyMaxTokens,
		ResponseSchema: classifySchema,
	}

	resp, err := c.generator.GenerateContent(ctx, req)
	if err != nil {
		return nil, err
	}

	var result classifyResult
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", llmprovider.ErrMalformedOutput, err)
	}

	intent := chat.Intent(result.Intent)
	if !chat.KnownIntents[intent] {
		c.l.Warn(ctx, "classifier.Classify: unrecognized intent label, clamping to UNKNOWN", "label", result.Intent)
		intent = chat.IntentUnknown
	}

	slots := result.Slots
	if slots == nil {
		slots = map[string]interface{}{}
	}

	return &Decision{
		Intent:    intent,
		Source:    chat.SourceModel,
		Slots:     slots,
		Reasoning: result.Reasoning,
	}, nil
}

func (c *implClassifier) ExtractArgs(ctx context.Context, message string, toolName string, schema map[string]interface{}, hint string) (map[string]interface{}, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal tool schema: %w", err)
	}

	prompt := fmt.Sprintf(extractPrompt, toolName, schemaJSON)
	userText := message
	if hint != "" {
		userText = message + "\n\n" + hint
	}

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: prompt}},
		},
		Messages: []llmprovider.Message{
			{Role: "user", Parts: []llmprovider.Part{{Text: userText}}},
		},
		Temperature:    extractTemperature,
		MaxTokens:      extractMaxTokens,
		ResponseSchema: schema,
	}

	resp, err := c.generator.GenerateContent(ctx, req)
	if err != nil {
		if errors.Is(err, llmprovider.ErrAllProvidersFailed) || errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			return nil, chat.ErrModelUnavailable
		}
		return nil, err
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Text())), &args); err != nil {
		return nil, fmt.Errorf("%w: %v", llmprovider.ErrMalformedOutput, err)
	}
	return args, nil
}

// buildMessages appends the latest message to a bounded window of history.
func buildMessages(message string, history []chat.ConversationTurn) []llmprovider.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	msgs := make([]llmprovider.Message, 0, len(history)+1)
	for _, turn := range history {
		role := turn.Role
		if role != "user" && role != "assistant" {
			role = "user"
		}
		msgs = append(msgs, llmprovider.Message{
			Role:  role,
			Parts: []llmprovider.Part{{Text: turn.Content}},
		})
	}
	msgs = append(msgs, llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: message}},
	})
	return msgs
}

// stripCodeFence tolerates models that wrap JSON in markdown fences despite
// JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
