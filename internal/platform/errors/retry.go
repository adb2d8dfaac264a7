package errors

// Retry semantics for export failures

import (
	"context"
	stderrs "errors"
)

// IsRetryable reports whether a failed export is worth retrying as-is.
// Rasterization and encoding failures are terminal for one attempt but not for the input.
// Validation, missing source, and serialization failures need different input first.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	if stderrs.Is(err, context.Canceled) {
		return false
	}
	switch CodeOf(err) {
	case ErrorCodeRasterization, ErrorCodeEncoding, ErrorCodeUnavailable, ErrorCodeTooManyRequests:
		return true
	default:
		return false
	}
}

// Retryable reports whether the error is retryable
func Retryable(err error) bool { return IsRetryable(err) }

// IsUserFixable reports whether the caller must change the input before retrying
func IsUserFixable(err error) bool {
	switch CodeOf(err) {
	case ErrorCodeValidation, ErrorCodeInvalidArgument, ErrorCodeJSON, ErrorCodeSourceNotFound,
		ErrorCodeSerialization:
		return true
	default:
		return false
	}
}
