package errors

import (
	"fmt"
)

// Domain-specific error codes for the map generator

const (
	CodeInvalidConfig      = "INVALID_CONFIG"
	CodeStartPosImpossible = "START_POSITIONS_IMPOSSIBLE"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeCancelled          = "CANCELLED"
)

// Sentinel errors
var (
	ErrCancelled = &AppError{Code: CodeCancelled, Message: "Generation cancelled"}
)

// NewInvalidConfig returns an InvalidConfig error with a custom message
func NewInvalidConfig(format string, args ...any) error {
	return &AppError{
		Code:    CodeInvalidConfig,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewStartPositionsImpossible reports that no legal spawn layout exists
// after the given number of placement attempts.
func NewStartPositionsImpossible(attempts int) error {
	return &AppError{
		Code:     CodeStartPosImpossible,
		Message:  fmt.Sprintf("no legal starting positions after %d attempts", attempts),
		Attempts: attempts,
	}
}

// NewValidationFailed reports that the generated map violates invariants
func NewValidationFailed(issues []string) error {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: fmt.Sprintf("map validation failed with %d issue(s)", len(issues)),
		Issues:  issues,
	}
}
