package auth

// Profile represents the normalized user profile returned by the
// external identity provider. It contains facts only, no decisions,
// and lives just long enough to resolve a local user.
type Profile struct {
	ExternalID int64  // provider-scoped unique user identifier
	Email      string // may be empty, the provider treats it as optional
	Nickname   string // may be empty
	AvatarURL  string // may be empty
}

// Principal is the authenticated identity attached to a request after
// successful token validation. It is derived solely from the token's
// subject claim and never persisted.
type Principal struct {
	UserID int64
	Scopes []string
}
