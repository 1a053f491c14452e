package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP codes in one place
// by the API error handler.
var (
	// Validation (400)
	ErrMissingCredentials   = errors.New("username and password required")
	ErrEmailRequired        = errors.New("email is required")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrPasswordsRequired    = errors.New("current password and new password are required")
	ErrPasswordConfirmation = errors.New("password confirmation is required")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrAlreadySubmitted     = errors.New("menu already submitted")

	// Authentication (401)
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrWrongPassword        = errors.New("password is incorrect")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenRevoked         = errors.New("token has been revoked")

	// Authorization (403)
	ErrForbidden = errors.New("access forbidden")

	// Not found (404)
	ErrUserNotFound = errors.New("user not found")
	ErrMenuNotFound = errors.New("menu not found")

	// Conflict (409)
	ErrUserExists = errors.New("username already exists")
	ErrEmailInUse = errors.New("email already in use")

	// Persistence (500). Cascading deletes wrap this so a transactional failure
	// is never surfaced as a partial success.
	ErrPersistence = errors.New("persistence failure")
)

// WeakPasswordError carries the first violated password-policy rule so the
// API can return it verbatim.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return e.Reason
}
