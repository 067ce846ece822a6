package provider

import (
	"context"

	"kakao-auth-service/internal/auth"
)

// OAuthProvider defines the contract every external identity provider
// must implement. Implementations return identity facts only and must
// not perform user creation, token issuance or cookie handling.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "kakao").
	Name() string

	// AuthCodeURL returns the fully-formed authorization URL the
	// browser is sent to.
	AuthCodeURL() string

	// ExchangeCode exchanges the one-time authorization code for a
	// provider access token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchProfile fetches the provider's user profile with the
	// provider access token.
	FetchProfile(ctx context.Context, accessToken string) (*auth.Profile, error)
}
