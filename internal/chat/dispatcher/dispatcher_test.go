package dispatcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/classifier"
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

type fakeTool struct {
	name     string
	params   map[string]interface{}
	execFn   func(ctx context.Context, args map[string]interface{}) (*agent.Result, error)
	executed int
	lastArgs map[string]interface{}
}

func (f *fakeTool) Name() string                       { return f.name }
func (f *fakeTool) Description() string                { return "fake" }
func (f *fakeTool) Parameters() map[string]interface{} { return f.params }
func (f *fakeTool) Mutating() bool                     { return true }

func (f *fakeTool) Execute(ctx context.Context, args map[string]interface{}) (*agent.Result, error) {
	f.executed++
	f.lastArgs = args
	if f.execFn != nil {
		return f.execFn(ctx, args)
	}
	return &agent.Result{Data: map[string]interface{}{"ok": true}, Summary: "done"}, nil
}

type fakeClassifier struct {
	extractArgs map[string]interface{}
	extractErr  error
	extractHint string
	calls       int
}

func (f *fakeClassifier) Classify(context.Context, string, []chat.ConversationTurn, *chat.SessionContext) (*classifier.Decision, error) {
	return nil, errors.New("not used")
}

func (f *fakeClassifier) ExtractArgs(_ context.Context, _ string, _ string, _ map[string]interface{}, hint string) (map[string]interface{}, error) {
	f.calls++
	f.extractHint = hint
	return f.extractArgs, f.extractErr
}

func planToolSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"days":    map[string]interface{}{"type": "integer"},
			"dietary": map[string]interface{}{"type": "string"},
		},
	}
}

func swapToolSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"meal_plan_id": map[string]interface{}{"type": "string"},
			"day":          map[string]interface{}{"type": "integer"},
			"meal_type":    map[string]interface{}{"type": "string"},
		},
		"required": []string{"meal_plan_id"},
	}
}

func newDispatcher(t *testing.T, cls classifier.Classifier, tools ...agent.Tool) Dispatcher {
	t.Helper()
	reg := agent.NewRegistry()
	for _, tool := range tools {
		reg.Register(tool)
	}
	return New(nopLogger{}, reg, cls, time.Second)
}

func TestDispatch_ConversationalRunsNoTools(t *testing.T) {
	tool := &fakeTool{name: "generate_meal_plan", params: planToolSchema()}
	d := newDispatcher(t, &fakeClassifier{}, tool)

	out := d.Dispatch(context.Background(), Input{
		Decision: &classifier.Decision{Intent: chat.IntentConversational},
	})

	if len(out.Attempted) != 0 || len(out.Results) != 0 {
		t.Errorf("conversational turn ran tools: %+v", out)
	}
	if tool.executed != 0 {
		t.Errorf("tool executed %d times", tool.executed)
	}
}

func TestDispatch_SuccessFirstAttempt(t *testing.T) {
	planID := "plan-1"
	tool := &fakeTool{
		name:   "generate_meal_plan",
		params: planToolSchema(),
		execFn: func(_ context.Context, _ map[string]interface{}) (*agent.Result, error) {
			return &agent.Result{
				Data:         map[string]interface{}{"id": planID},
				Summary:      "Created a 3-day plan.",
				ContextPatch: &chat.ContextPatch{MealPlanID: &planID},
			}, nil
		},
	}
	d := newDispatcher(t, &fakeClassifier{}, tool)

	out := d.Dispatch(context.Background(), Input{
		Message: "3 day plan",
		Decision: &classifier.Decision{
			Intent: chat.IntentMealPlan,
			Slots:  map[string]interface{}{"days": 3},
		},
	})

	if out.Failed || out.Retried || out.Clarification != "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if _, ok := out.Results["generate_meal_plan"]; !ok {
		t.Error("missing tool result")
	}
	if out.Patch.MealPlanID == nil || *out.Patch.MealPlanID != planID {
		t.Errorf("context patch not propagated: %+v", out.Patch)
	}
	if out.Patch.ToolResults["generate_meal_plan"] == nil {
		t.Error("tool result not recorded in patch")
	}
	if len(out.Records) != 1 || out.Records[0].Outcome != chat.OutcomeSuccess {
		t.Errorf("unexpected records: %+v", out.Records)
	}
}

func TestDispatch_MissingContextYieldsClarification(t *testing.T) {
	tool := &fakeTool{name: "generate_grocery_list", params: swapToolSchema()}
	d := newDispatcher(t, &fakeClassifier{}, tool)

	out := d.Dispatch(context.Background(), Input{
		Message:    "make my grocery list",
		Decision:   &classifier.Decision{Intent: chat.IntentGroceryList, Slots: map[string]interface{}{}},
		SessionCtx: &chat.SessionContext{SessionID: "s1"},
	})

	if out.Clarification == "" {
		t.Fatal("expected a clarification")
	}
	if tool.executed != 0 {
		t.Errorf("tool must not execute without context, ran %d times", tool.executed)
	}
	if out.Failed {
		t.Error("missing context is not a terminal failure")
	}
}

func TestDispatch_ContextInjection(t *testing.T) {
	tool := &fakeTool{name: "swap_meal", params: swapToolSchema()}
	d := newDispatcher(t, &fakeClassifier{}, tool)

	out := d.Dispatch(context.Background(), Input{
		Message: "swap day 2 dinner",
		Decision: &classifier.Decision{
			Intent: chat.IntentMealSwap,
			Slots:  map[string]interface{}{"day": 2, "meal_type": "dinner"},
		},
		SessionCtx: &chat.SessionContext{SessionID: "s1", MealPlanID: "plan-9"},
	})

	if out.Failed || out.Clarification != "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if tool.lastArgs["meal_plan_id"] != "plan-9" {
		t.Errorf("meal_plan_id not injected: %v", tool.lastArgs)
	}
}

func TestDispatch_ValidationRetrySucceeds(t *testing.T) {
	tool := &fakeTool{name: "generate_meal_plan", params: planToolSchema()}
	cls := &fakeClassifier{extractArgs: map[string]interface{}{"days": float64(3)}}
	d := newDispatcher(t, cls, tool)

	out := d.Dispatch(context.Background(), Input{
		Message: "plan for three days",
		Decision: &classifier.Decision{
			Intent: chat.IntentMealPlan,
			Slots:  map[string]interface{}{"days": "three"}, // wrong type
		},
	})

	if out.Failed {
		t.Fatalf("expected recovery, got failure: %+v", out.Records)
	}
	if !out.Retried {
		t.Error("outcome should be marked retried")
	}
	if cls.calls != 1 {
		t.Errorf("expected one re-extraction, got %d", cls.calls)
	}
	if cls.extractHint == "" {
		t.Error("re-extraction should carry the validation hint")
	}
	if tool.executed != 1 {
		t.Errorf("tool should execute exactly once, ran %d times", tool.executed)
	}
	if len(out.Records) != 2 {
		t.Fatalf("expected two records, got %d", len(out.Records))
	}
	if out.Records[0].Outcome != chat.OutcomeRetried || out.Records[1].Outcome != chat.OutcomeRetried {
		t.Errorf("unexpected record outcomes: %+v", out.Records)
	}
}

func TestDispatch_SecondValidationFailureIsTerminal(t *testing.T) {
	tool := &fakeTool{name: "generate_meal_plan", params: planToolSchema()}
	cls := &fakeClassifier{extractArgs: map[string]interface{}{"days": "still wrong"}}
	d := newDispatcher(t, cls, tool)

	out := d.Dispatch(context.Background(), Input{
		Message: "plan something",
		Decision: &classifier.Decision{
			Intent: chat.IntentMealPlan,
			Slots:  map[string]interface{}{"days": "three"},
		},
	})

	if !out.Failed {
		t.Fatal("expected terminal failure")
	}
	if tool.executed != 0 {
		t.Errorf("tool must never execute with invalid args, ran %d times", tool.executed)
	}
	if cls.calls != 1 {
		t.Errorf("retry is bounded to one re-extraction, got %d", cls.calls)
	}
	if len(out.Records) != 2 {
		t.Errorf("expected exactly two attempts, got %d", len(out.Records))
	}
}

func TestDispatch_ExecutionErrorNotRetried(t *testing.T) {
	tool := &fakeTool{
		name:   "generate_meal_plan",
		params: planToolSchema(),
		execFn: func(_ context.Context, _ map[string]interface{}) (*agent.Result, error) {
			return nil, errors.New("storage unreachable")
		},
	}
	cls := &fakeClassifier{}
	d := newDispatcher(t, cls, tool)

	out := d.Dispatch(context.Background(), Input{
		Message: "3 day plan",
		Decision: &classifier.Decision{
			Intent: chat.IntentMealPlan,
			Slots:  map[string]interface{}{"days": 3},
		},
	})

	if !out.Failed {
		t.Fatal("expected failure")
	}
	if tool.executed != 1 {
		t.Errorf("execution errors must not be retried, ran %d times", tool.executed)
	}
	if cls.calls != 0 {
		t.Errorf("no re-extraction for execution errors, got %d", cls.calls)
	}
	var te *chat.ToolExecutionError
	if !errors.As(out.Records[0].Err, &te) {
		t.Errorf("expected ToolExecutionError, got %T", out.Records[0].Err)
	}
}

func TestDispatch_ExecuteValidationErrorGetsOneRetry(t *testing.T) {
	calls := 0
	tool := &fakeTool{
		name:   "swap_meal",
		params: swapToolSchema(),
		execFn: func(_ context.Context, _ map[string]interface{}) (*agent.Result, error) {
			calls++
			if calls == 1 {
				return nil, &chat.ValidationError{Tool: "swap_meal", Field: "day", Reason: "day 9 is outside the plan"}
			}
			return &agent.Result{Data: "swapped", Summary: "Swapped the meal."}, nil
		},
	}
	cls := &fakeClassifier{extractArgs: map[string]interface{}{"day": float64(2), "meal_type": "dinner"}}
	d := newDispatcher(t, cls, tool)

	out := d.Dispatch(context.Background(), Input{
		Message: "swap day 9 dinner",
		Decision: &classifier.Decision{
			Intent: chat.IntentMealSwap,
			Slots:  map[string]interface{}{"day": 9, "meal_type": "dinner"},
		},
		SessionCtx: &chat.SessionContext{MealPlanID: "plan-1"},
	})

	if out.Failed {
		t.Fatalf("expected recovery: %+v", out.Records)
	}
	if !out.Retried || tool.executed != 2 {
		t.Errorf("expected one retry execution, retried=%v executed=%d", out.Retried, tool.executed)
	}
}
