package handler

import (
	"errors"

	"kakao-auth-service/internal/auth"
)

// failureURL is the error landing page for failed login attempts.
const failureURL = "/main.html"

// Classified failure vocabulary placed in the redirect query. Raw
// provider error text never leaves the server log.
const (
	codeAccessDenied       = "access_denied"
	codeInvalidRequest     = "invalid_request"
	codeUnauthorizedClient = "unauthorized_client"
	codeServerError        = "server_error"
	codeLoginFailed        = "login_failed"
	codeUnknownError       = "unknown_error"
)

var failureMessages = map[string]string{
	codeAccessDenied:       "User cancelled authentication.",
	codeInvalidRequest:     "Invalid request.",
	codeUnauthorizedClient: "Unauthorized client.",
	codeServerError:        "A server error occurred.",
	codeLoginFailed:        "Login failed. Please try again.",
	codeUnknownError:       "An unknown error occurred.",
}

// classifyProviderError maps an OAuth error code returned by the
// provider on the callback into the fixed vocabulary. Unmapped codes
// fall back to unknown_error.
func classifyProviderError(providerCode string) (code, message string) {
	switch providerCode {
	case codeAccessDenied, codeInvalidRequest, codeUnauthorizedClient, codeServerError:
		code = providerCode
	default:
		code = codeUnknownError
	}
	return code, failureMessages[code]
}

// classifyFlowError maps an internal login-flow failure into the fixed
// vocabulary.
func classifyFlowError(err error) (code, message string) {
	switch {
	case errors.Is(err, auth.ErrInvalidRequest):
		code = codeInvalidRequest
	case errors.Is(err, auth.ErrExternalService):
		code = codeServerError
	case errors.Is(err, auth.ErrIdentityConflict):
		// two first-logins raced; the retry will find the winner's row
		code = codeLoginFailed
	default:
		code = codeUnknownError
	}
	return code, failureMessages[code]
}
