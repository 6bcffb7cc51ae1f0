package orchestrator

import (
	"context"
	"testing"
	"time"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/classifier"
	"meal-planning-assistant/internal/chat/composer"
	"meal-planning-assistant/internal/chat/contextstore"
	"meal-planning-assistant/internal/chat/dispatcher"
	"meal-planning-assistant/pkg/llmprovider"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{})  {}
func (nopLogger) Info(context.Context, string, ...interface{})   {}
func (nopLogger) Warn(context.Context, string, ...interface{})   {}
func (nopLogger) Error(context.Context, string, ...interface{})  {}
func (nopLogger) Debugf(context.Context, string, ...interface{}) {}
func (nopLogger) Infof(context.Context, string, ...interface{})  {}
func (nopLogger) Warnf(context.Context, string, ...interface{})  {}
func (nopLogger) Errorf(context.Context, string, ...interface{}) {}

type stubClassifier struct {
	decision *classifier.Decision
	err      error
	panics   bool
}

func (s *stubClassifier) Classify(context.Context, string, []chat.ConversationTurn, *chat.SessionContext) (*classifier.Decision, error) {
	if s.panics {
		panic("classifier blew up")
	}
	return s.decision, s.err
}

func (s *stubClassifier) ExtractArgs(context.Context, string, string, map[string]interface{}, string) (map[string]interface{}, error) {
	return nil, nil
}

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) GenerateContent(context.Context, *llmprovider.Request) (*llmprovider.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: s.text}}},
		Usage:   &llmprovider.Usage{},
	}, nil
}

type planTool struct{ planID string }

func (p *planTool) Name() string        { return "generate_meal_plan" }
func (p *planTool) Description() string { return "creates a meal plan" }
func (p *planTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"days": map[string]interface{}{"type": "integer"},
		},
	}
}
func (p *planTool) Mutating() bool { return true }
func (p *planTool) Execute(context.Context, map[string]interface{}) (*agent.Result, error) {
	return &agent.Result{
		Data:         map[string]interface{}{"id": p.planID},
		Summary:      "Created your meal plan.",
		ContextPatch: &chat.ContextPatch{MealPlanID: &p.planID},
	}, nil
}

type groceryTool struct{}

func (groceryTool) Name() string        { return "generate_grocery_list" }
func (groceryTool) Description() string { return "builds a grocery list" }
func (groceryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meal_plan_id": map[string]interface{}{"type": "string"},
		},
		"required": []string{"meal_plan_id"},
	}
}
func (groceryTool) Mutating() bool { return true }
func (groceryTool) Execute(context.Context, map[string]interface{}) (*agent.Result, error) {
	return &agent.Result{Data: "list", Summary: "Grocery list ready."}, nil
}

func newOrchestrator(cls classifier.Classifier, store chat.ContextStore, gen classifier.Generator, tools ...agent.Tool) chat.UseCase {
	reg := agent.NewRegistry()
	for _, tool := range tools {
		reg.Register(tool)
	}
	dsp := dispatcher.New(nopLogger{}, reg, cls, time.Second)
	return New(nopLogger{}, store, cls, dsp, composer.New(), gen)
}

func TestProcessMessage_ConversationalHasNoToolResults(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	cls := &stubClassifier{decision: &classifier.Decision{Intent: chat.IntentConversational, Source: chat.SourceModel}}
	uc := newOrchestrator(cls, store, &stubGenerator{text: "Hi! Want a meal plan?"})

	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{Message: "hello"})

	if result.ToolResults != nil {
		t.Errorf("conversational turn has tool results: %v", result.ToolResults)
	}
	if result.Response != "Hi! Want a meal plan?" {
		t.Errorf("unexpected response %q", result.Response)
	}
	if result.SessionID == "" {
		t.Error("session id should be minted when absent")
	}
	if result.Debug == nil || result.Debug.Intent != chat.IntentConversational {
		t.Errorf("unexpected debug: %+v", result.Debug)
	}
}

func TestProcessMessage_MealPlanSuccessUpdatesContext(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	cls := &stubClassifier{decision: &classifier.Decision{
		Intent: chat.IntentMealPlan,
		Source: chat.SourceRule,
		Slots:  map[string]interface{}{"days": 3},
	}}
	uc := newOrchestrator(cls, store, &stubGenerator{}, &planTool{planID: "plan-42"})

	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{
		Message:   "make me a 3-day meal plan",
		SessionID: "sess-1",
		UserID:    "user-7",
	})

	if result.Confidence != chat.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", result.Confidence)
	}
	if result.SessionID != "sess-1" {
		t.Errorf("session id changed: %q", result.SessionID)
	}
	if result.ToolResults["generate_meal_plan"] == nil {
		t.Error("missing tool result")
	}

	sc := store.Get("sess-1")
	if sc.MealPlanID != "plan-42" {
		t.Errorf("meal plan id not persisted: %q", sc.MealPlanID)
	}
	if sc.UserID != "user-7" {
		t.Errorf("user id not persisted: %q", sc.UserID)
	}
}

func TestProcessMessage_GroceryWithoutPlanAsksForClarification(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	cls := &stubClassifier{decision: &classifier.Decision{
		Intent: chat.IntentGroceryList,
		Source: chat.SourceRule,
		Slots:  map[string]interface{}{},
	}}
	uc := newOrchestrator(cls, store, &stubGenerator{}, groceryTool{})

	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{
		Message:   "build my grocery list",
		SessionID: "sess-1",
	})

	if result.Confidence != chat.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.Confidence)
	}
	if result.ToolResults != nil {
		t.Errorf("no tool should have produced results: %v", result.ToolResults)
	}
	if result.Response == "" || result.Response == fallbackReply {
		t.Errorf("expected a clarifying question, got %q", result.Response)
	}
}

func TestProcessMessage_CrossSessionContextCarriesOver(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	planCls := &stubClassifier{decision: &classifier.Decision{
		Intent: chat.IntentMealPlan, Source: chat.SourceRule, Slots: map[string]interface{}{"days": 3},
	}}
	uc := newOrchestrator(planCls, store, &stubGenerator{}, &planTool{planID: "plan-1"}, groceryTool{})

	uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{
		Message: "3 day plan", SessionID: "sess-1",
	})

	planCls.decision = &classifier.Decision{
		Intent: chat.IntentGroceryList, Source: chat.SourceRule, Slots: map[string]interface{}{},
	}
	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{
		Message: "now the grocery list", SessionID: "sess-1",
	})

	if result.Confidence != chat.ConfidenceHigh {
		t.Errorf("confidence = %s, want high (plan id should carry over)", result.Confidence)
	}
	if result.ToolResults["generate_grocery_list"] == nil {
		t.Errorf("grocery tool did not run: %+v", result)
	}
}

func TestProcessMessage_ModelUnavailableReturnsFallback(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	cls := &stubClassifier{err: chat.ErrModelUnavailable}
	uc := newOrchestrator(cls, store, &stubGenerator{})

	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{Message: "hello"})

	if result.Response != fallbackReply {
		t.Errorf("unexpected response %q", result.Response)
	}
	if result.Confidence != chat.ConfidenceLow {
		t.Errorf("confidence = %s, want low", result.Confidence)
	}
	if result.Debug == nil || result.Debug.Intent != chat.IntentUnknown {
		t.Errorf("unexpected debug: %+v", result.Debug)
	}
}

func TestProcessMessage_PanicRecoversToFallback(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	cls := &stubClassifier{panics: true}
	uc := newOrchestrator(cls, store, &stubGenerator{})

	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{Message: "hello", SessionID: "sess-1"})

	if result.Response != fallbackReply {
		t.Errorf("panic should degrade to fallback, got %q", result.Response)
	}
	if result.SessionID != "sess-1" {
		t.Errorf("session id lost in fallback: %q", result.SessionID)
	}
}

func TestProcessMessage_ConversationalModelFailureUsesCannedText(t *testing.T) {
	store := contextstore.New(time.Minute, 16)
	cls := &stubClassifier{decision: &classifier.Decision{Intent: chat.IntentConversational, Source: chat.SourceModel}}
	uc := newOrchestrator(cls, store, &stubGenerator{err: llmprovider.ErrAllProvidersFailed})

	result := uc.ProcessMessage(context.Background(), chat.ProcessMessageInput{Message: "hello"})

	if result.Response == "" || result.Response == fallbackReply {
		t.Errorf("expected canned conversational text, got %q", result.Response)
	}
}
