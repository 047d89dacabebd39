package domain

import "errors"

// Error kinds. Service-level errors wrap one of these so handlers can map
// any failure to a transport outcome with a single errors.Is check.
var (
	// ErrNotFound - a book, user, loan or fine id does not resolve
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidState - the operation is not permitted in the entity's
	// current state (book inactive or out of copies, user inactive, loan
	// already returned, fine already paid)
	ErrInvalidState = errors.New("operation not permitted")

	// ErrPolicyBlock - a lending policy refuses the operation and names
	// the blocking entity (an unpaid fine)
	ErrPolicyBlock = errors.New("blocked by lending policy")

	// ErrConcurrencyConflict - a row was mutated between read and write by
	// a concurrent operation; the caller may retry the whole operation
	ErrConcurrencyConflict = errors.New("concurrent modification detected")
)

// Auth errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrDuplicateEntry     = errors.New("duplicate entry")
)
