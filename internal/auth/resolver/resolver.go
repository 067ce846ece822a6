package resolver

import (
	"context"

	"kakao-auth-service/internal/auth"
)

// Resolver determines which local user an external identity belongs to.
// It is the only place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, profile *auth.Profile) (userID int64, err error)
}
