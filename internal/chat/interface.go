package chat

import "context"

// UseCase is the orchestrated chat entry point consumed by delivery layers.
//
// ProcessMessage never fails: infrastructure errors, panics and degraded
// tool outcomes are all folded into the returned result's Response and
// Confidence fields.
type UseCase interface {
	ProcessMessage(ctx context.Context, input ProcessMessageInput) OrchestrationResult
}

// ContextStore holds per-session carry-over state. Get never fails; first
// access creates an empty context. Update merges last-write-wins per field
// and must be atomic per session.
type ContextStore interface {
	Get(sessionID string) *SessionContext
	Update(sessionID string, patch ContextPatch)
}
