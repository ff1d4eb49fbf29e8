package errors

import (
	stdErrors "errors"
	"fmt"
)

// AppError represents an application-level error with a machine-readable code
type AppError struct {
	Code     string   `json:"code"`               // Machine-readable code (e.g., "INVALID_CONFIG")
	Message  string   `json:"message"`            // Human-readable message
	Err      error    `json:"-"`                  // Underlying error (not serialized)
	Issues   []string `json:"issues,omitempty"`   // Validator findings, when applicable
	Attempts int      `json:"attempts,omitempty"` // Retry count, when applicable
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap creates a new error wrapping the original with a custom message
func Wrap(base *AppError, message string, err error) *AppError {
	return &AppError{
		Code:    base.Code,
		Message: message,
		Err:     err,
	}
}

// New creates a new AppError with custom values
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// CodeOf extracts the machine-readable code from any error in the chain.
// Returns "" when the chain carries no AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HasCode reports whether any error in the chain carries the given code
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}
