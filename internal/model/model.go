package model

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// Scope carries per-request identity resolved by the auth layer upstream.
// An empty UserID is a valid anonymous request.
type Scope struct {
	UserID    string
	SessionID string
	RequestID string
}
