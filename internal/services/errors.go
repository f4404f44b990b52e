package services

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrAccessDenied  = errors.New("access denied")
)

// ValidationError carries a user-correctable form error. The message is
// shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError carries a failed-credentials message for the login form.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
