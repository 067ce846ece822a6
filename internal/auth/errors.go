package auth

import "errors"

// Failure taxonomy for the login flow. Auth failures are routine,
// expected outcomes, so they travel as error values, never panics.
var (
	// ErrInvalidRequest covers caller mistakes: a missing or blank
	// authorization code, malformed input.
	ErrInvalidRequest = errors.New("auth: invalid request")

	// ErrInvalidToken covers a bad signature, malformed structure or
	// an expired token. The middleware reduces it to "no principal".
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrExternalService covers provider timeouts, non-2xx responses
	// and transport failures. Raw provider error text stays in server
	// logs and never reaches the client.
	ErrExternalService = errors.New("auth: external service failure")

	// ErrIdentityConflict is the storage uniqueness violation raised
	// when two first-logins for the same external id race.
	ErrIdentityConflict = errors.New("auth: identity conflict")
)
