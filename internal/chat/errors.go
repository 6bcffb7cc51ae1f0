package chat

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable marks the one failure class that aborts a turn: the
// LLM endpoint could not be reached for classification. The facade converts
// it to the fixed low-confidence fallback reply.
var ErrModelUnavailable = errors.New("model endpoint unavailable")

// ValidationError reports malformed or missing tool arguments. Recovered by
// a single retry with an error hint; a second failure is terminal for the
// tool, never for the turn.
type ValidationError struct {
	Tool   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("tool %s: invalid argument %q: %s", e.Tool, e.Field, e.Reason)
	}
	return fmt.Sprintf("tool %s: invalid arguments: %s", e.Tool, e.Reason)
}

// Hint is the corrective text appended when re-extracting arguments.
func (e *ValidationError) Hint() string {
	if e.Field != "" {
		return fmt.Sprintf("The previous attempt failed because field %q was invalid: %s.", e.Field, e.Reason)
	}
	return fmt.Sprintf("The previous attempt failed: %s.", e.Reason)
}

// MissingContextError means a tool needs an id from a prior turn that the
// session context does not have. Surfaced as a clarifying reply, not an error.
type MissingContextError struct {
	Tool  string
	Field string
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("tool %s: required context %q is missing", e.Tool, e.Field)
}

// ToolExecutionError is an infrastructure failure inside a tool (storage
// unreachable, provider chain exhausted mid-tool). Never retried.
type ToolExecutionError struct {
	Tool string
	Err  error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("tool %s: execution failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error {
	return e.Err
}
