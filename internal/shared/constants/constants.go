// Package constants defines shared application constants.
package constants

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Live session limits.
const (
	// MaxSessionDurationMinutes caps a requested session duration (12 hours).
	MaxSessionDurationMinutes = 720

	// MaxRejectionReasonLength caps vendor rejection reason free text.
	MaxRejectionReasonLength = 500
)
