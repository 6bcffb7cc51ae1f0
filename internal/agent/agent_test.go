package agent

import (
	"context"
	"errors"
	"testing"

	"meal-planning-assistant/internal/chat"
)

type fakeTool struct {
	name     string
	mutating bool
}

func (t *fakeTool) Name() string        { return t.name }
func (t *fakeTool) Description() string { return "a fake tool" }
func (t *fakeTool) Mutating() bool      { return t.mutating }
func (t *fakeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{"type": "string"},
		},
		"required": []string{"query"},
	}
}
func (t *fakeTool) Execute(ctx context.Context, args map[string]interface{}) (*Result, error) {
	return &Result{Data: "ok"}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeTool{name: "alpha"})
	r.Register(&fakeTool{name: "beta", mutating: true})

	if _, ok := r.Get("alpha"); !ok {
		t.Error("expected alpha to be registered")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("did not expect missing tool")
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(list))
	}
	// Registration order is preserved so function definitions are stable.
	if list[0].Name() != "alpha" || list[1].Name() != "beta" {
		t.Errorf("unexpected order: %s, %s", list[0].Name(), list[1].Name())
	}

	defs := r.ToFunctionDefinitions()
	if len(defs) != 2 || defs[0].Name != "alpha" {
		t.Errorf("unexpected function definitions: %+v", defs)
	}
}

func TestValidateArgs(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"days":      map[string]interface{}{"type": "integer"},
			"dietary":   map[string]interface{}{"type": "string"},
			"meal_type": map[string]interface{}{"type": "string", "enum": []string{"breakfast", "lunch", "dinner"}},
			"servings":  map[string]interface{}{"type": "number"},
		},
		"required": []string{"days"},
	}

	tests := []struct {
		name      string
		args      map[string]interface{}
		wantErr   bool
		wantField string
	}{
		{
			name:    "valid args",
			args:    map[string]interface{}{"days": float64(3), "dietary": "vegetarian"},
			wantErr: false,
		},
		{
			name:      "missing required",
			args:      map[string]interface{}{"dietary": "vegan"},
			wantErr:   true,
			wantField: "days",
		},
		{
			name:      "wrong type",
			args:      map[string]interface{}{"days": "three"},
			wantErr:   true,
			wantField: "days",
		},
		{
			name:      "fractional integer",
			args:      map[string]interface{}{"days": 2.5},
			wantErr:   true,
			wantField: "days",
		},
		{
			name:      "enum violation",
			args:      map[string]interface{}{"days": float64(1), "meal_type": "brunch"},
			wantErr:   true,
			wantField: "meal_type",
		},
		{
			name:    "extra args ignored",
			args:    map[string]interface{}{"days": float64(1), "unknown": 42},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgs("test_tool", schema, tt.args)
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr {
				var verr *chat.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *chat.ValidationError, got %T", err)
				}
				if verr.Field != tt.wantField {
					t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
				}
			}
		})
	}
}
