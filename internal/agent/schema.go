package agent

import (
	"fmt"

	"meal-planning-assistant/internal/chat"
)

// ValidateArgs checks args against a tool's parameter schema (the same
// object-typed JSON schema map handed to the LLM). It runs before any side
// effect: required fields must be present, present fields must match the
// declared type, and enum fields must hold an allowed value.
func ValidateArgs(toolName string, schema, args map[string]interface{}) error {
	properties, _ := schema["properties"].(map[string]interface{})

	if required, ok := schema["required"].([]string); ok {
		for _, field := range required {
			if v, present := args[field]; !present || v == nil || v == "" {
				return &chat.ValidationError{Tool: toolName, Field: field, Reason: "required field is missing"}
			}
		}
	}

	for field, value := range args {
		propRaw, declared := properties[field]
		if !declared {
			continue // extra args are ignored, not fatal
		}
		prop, _ := propRaw.(map[string]interface{})

		declaredType, _ := prop["type"].(string)
		if declaredType != "" && !matchesType(declaredType, value) {
			return &chat.ValidationError{
				Tool:   toolName,
				Field:  field,
				Reason: fmt.Sprintf("expected %s, got %T", declaredType, value),
			}
		}

		if enum, ok := prop["enum"].([]string); ok {
			s, _ := value.(string)
			if !containsString(enum, s) {
				return &chat.ValidationError{
					Tool:   toolName,
					Field:  field,
					Reason: fmt.Sprintf("value %q is not one of %v", s, enum),
				}
			}
		}
	}

	return nil
}

// matchesType accepts the loose types JSON decoding produces: all numbers
// arrive as float64, integers are floats without a fraction.
func matchesType(declared string, value interface{}) bool {
	switch declared {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		return isNumeric(value)
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		default:
			return false
		}
	case "array":
		_, ok := value.([]interface{})
		return ok
	case "object":
		_, ok := value.(map[string]interface{})
		return ok
	default:
		return true
	}
}

func isNumeric(value interface{}) bool {
	switch value.(type) {
	case int, int64, float32, float64:
		return true
	default:
		return false
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
