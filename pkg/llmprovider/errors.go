package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content.
	// Callers treat this as "model endpoint unavailable".
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrMalformedOutput indicates the model responded, but its output could
	// not be parsed as the requested structure. Distinguishable from endpoint
	// failure so callers can retry with a corrective hint instead of failing
	// the turn.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrEmptyResponse indicates the model returned no usable content
	ErrEmptyResponse = errors.New("empty LLM response")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
