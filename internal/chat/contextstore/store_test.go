package contextstore

import (
	"testing"
	"time"

	"meal-planning-assistant/internal/chat"
)

func strPtr(s string) *string { return &s }

func TestGetCreatesEmptyContext(t *testing.T) {
	store := New(time.Minute, 16)

	sc := store.Get("sess-1")
	if sc.SessionID != "sess-1" {
		t.Errorf("unexpected session id %q", sc.SessionID)
	}
	if sc.MealPlanID != "" || sc.GroceryListID != "" {
		t.Errorf("new context should be empty: %+v", sc)
	}
	if sc.LastToolResults == nil {
		t.Error("LastToolResults should be initialized")
	}
}

func TestUpdateMergesFields(t *testing.T) {
	store := New(time.Minute, 16)

	store.Update("sess-1", chat.ContextPatch{
		UserID:     strPtr("user-1"),
		MealPlanID: strPtr("plan-1"),
	})
	store.Update("sess-1", chat.ContextPatch{
		GroceryListID: strPtr("list-1"),
		ToolResults:   map[string]interface{}{"generate_meal_plan": "ok"},
	})

	sc := store.Get("sess-1")
	if sc.UserID != "user-1" || sc.MealPlanID != "plan-1" || sc.GroceryListID != "list-1" {
		t.Errorf("merge lost fields: %+v", sc)
	}
	if sc.LastToolResults["generate_meal_plan"] != "ok" {
		t.Errorf("tool results not merged: %+v", sc.LastToolResults)
	}
}

func TestUpdateNilLeavesFieldAlone(t *testing.T) {
	store := New(time.Minute, 16)

	store.Update("sess-1", chat.ContextPatch{MealPlanID: strPtr("plan-1")})
	store.Update("sess-1", chat.ContextPatch{GroceryListID: strPtr("list-1")})

	if got := store.Get("sess-1").MealPlanID; got != "plan-1" {
		t.Errorf("nil pointer overwrote field, got %q", got)
	}
}

func TestUpdateEmptyStringClears(t *testing.T) {
	store := New(time.Minute, 16)

	store.Update("sess-1", chat.ContextPatch{MealPlanID: strPtr("plan-1")})
	store.Update("sess-1", chat.ContextPatch{MealPlanID: strPtr("")})

	if got := store.Get("sess-1").MealPlanID; got != "" {
		t.Errorf("explicit clear did not apply, got %q", got)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := New(time.Minute, 16)

	store.Update("sess-1", chat.ContextPatch{MealPlanID: strPtr("plan-1")})

	sc := store.Get("sess-1")
	sc.MealPlanID = "mutated"
	sc.LastToolResults["x"] = 1

	fresh := store.Get("sess-1")
	if fresh.MealPlanID != "plan-1" {
		t.Errorf("caller mutation leaked into store: %q", fresh.MealPlanID)
	}
	if _, ok := fresh.LastToolResults["x"]; ok {
		t.Error("caller map mutation leaked into store")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := New(time.Minute, 16)

	store.Update("sess-1", chat.ContextPatch{MealPlanID: strPtr("plan-1")})

	if got := store.Get("sess-2").MealPlanID; got != "" {
		t.Errorf("context leaked across sessions: %q", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	store := New(20*time.Millisecond, 16)

	store.Update("sess-1", chat.ContextPatch{MealPlanID: strPtr("plan-1")})
	time.Sleep(60 * time.Millisecond)

	if got := store.Get("sess-1").MealPlanID; got != "" {
		t.Errorf("expired session should read as empty, got %q", got)
	}
}
