// Package errors provides standardized error handling for the map generator.
//
// # Core Types
//
//   - AppError: Application-level error with a machine-readable code, a
//     human-readable message, and an optional wrapped cause
//
// # Usage
//
// Using predefined errors:
//
//	if ctx.Err() != nil {
//	    return errors.ErrCancelled
//	}
//
// Wrapping errors with context:
//
//	if err := placeStartPositions(...); err != nil {
//	    return errors.Wrap(errors.ErrCancelled, "placement interrupted", err)
//	}
//
// Creating taxonomy errors:
//
//	return errors.NewInvalidConfig("width %d below minimum", cfg.Width)
//
// Inspecting errors:
//
//	if errors.HasCode(err, errors.CodeValidationFailed) {
//	    ...
//	}
//
// # Error Categories
//
// The generator surfaces exactly four codes, defined in domain.go:
//   - CodeInvalidConfig: configuration rejected before generation starts
//   - CodeStartPosImpossible: no legal spawn layout after all retries
//   - CodeValidationFailed: final map violates an output invariant
//   - CodeCancelled: the caller's context was cancelled mid-generation
package errors
