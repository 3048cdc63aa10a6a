package styleai

import (
	"errors"

	apierrors "github.com/styleai/styleai-go/internal/errors"
)

// ValidationError is raised entirely client-side, before any network call:
// a required field is missing or the wardrobe is empty for a suggestion.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// IsValidation reports whether err is a client-side validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetworkError reports whether err is a transport-level failure (offline,
// DNS, connection reset) as opposed to a non-2xx response.
func IsNetworkError(err error) bool {
	var ce *apierrors.ClassifiedError
	if errors.As(err, &ce) {
		return ce.StatusCode == 0
	}
	return false
}

// IsNotFound reports whether err is an HTTP 404 from the backend.
func IsNotFound(err error) bool {
	var ce *apierrors.ClassifiedError
	if errors.As(err, &ce) {
		return ce.StatusCode == 404
	}
	return false
}

// IsUnauthorized reports whether err is an HTTP 401, typically an expired
// session token.
func IsUnauthorized(err error) bool {
	var ce *apierrors.ClassifiedError
	if errors.As(err, &ce) {
		return ce.StatusCode == 401
	}
	return false
}

// errorMessage reduces any request error to a single-line display message.
// The server's detail field wins when present.
func errorMessage(err error, fallback string) string {
	return apierrors.UserMessage(err, fallback)
}
