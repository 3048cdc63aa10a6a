package errors

import (
	"encoding/json"
	"fmt"

	"github.com/styleai/styleai-go/internal/types"
)

// ClassifyHTTPError determines whether an HTTP error should be retried.
// This implements best practices for HTTP error handling:
// - 4xx client errors (except 408/429) are irrecoverable
// - 5xx server errors are recoverable
// - Network-level errors are recoverable
func ClassifyHTTPError(statusCode int, body []byte, underlyingErr error) *ClassifiedError {
	return &ClassifiedError{
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Detail:     extractDetail(body),
		Underlying: underlyingErr,
	}
}

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408: // Request Timeout - can retry
			return Recoverable
		case 429: // Too Many Requests - should retry with backoff
			return Recoverable
		default:
			// 400 Bad Request, 401 Unauthorized, 403 Forbidden, 404 Not Found, etc.
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// extractDetail pulls the backend's {"detail": "..."} message out of an error
// body. Returns "" for empty or non-conforming bodies.
func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return ""
	}
	return er.Detail
}

// NewHTTPError creates a classified error for HTTP failures.
// This is a convenience function for API layer usage.
func NewHTTPError(statusCode int, body []byte, operation string) *ClassifiedError {
	underlyingErr := fmt.Errorf("%s failed: HTTP %d", operation, statusCode)
	return ClassifyHTTPError(statusCode, body, underlyingErr)
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are always recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Category:   Recoverable,
		StatusCode: 0, // No HTTP status for network errors
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}
