package resolver

import (
	"context"
	"errors"

	"kakao-auth-service/internal/auth"
	"kakao-auth-service/internal/logger"
	"kakao-auth-service/internal/user"
)

// fallbackNickname is used when the provider withholds the nickname.
const fallbackNickname = "Unknown"

// StoreResolver resolves identities against the user store with a
// find-or-create by external id. Lookup-then-create is not atomic:
// two concurrent first-logins can race, and the store's uniqueness
// constraint is the backstop. The loser sees auth.ErrIdentityConflict.
type StoreResolver struct {
	store user.Store
}

func NewStoreResolver(store user.Store) *StoreResolver {
	return &StoreResolver{store: store}
}

var _ Resolver = (*StoreResolver)(nil)

func (r *StoreResolver) Resolve(ctx context.Context, profile *auth.Profile) (int64, error) {
	if profile == nil || profile.ExternalID == 0 {
		return 0, errors.New("resolver: profile is missing an external id")
	}

	existing, err := r.store.FindByExternalID(ctx, profile.ExternalID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}

	nickname := profile.Nickname
	if nickname == "" {
		nickname = fallbackNickname
	}

	created, err := r.store.Save(ctx, user.User{
		KakaoID:         profile.ExternalID,
		Nickname:        nickname,
		ProfileImageURL: profile.AvatarURL,
		Email:           profile.Email,
		CreatedBy:       "system",
	})
	if err != nil {
		return 0, err
	}

	logger.Info("new user registered", map[string]any{
		"user_id":  created.ID,
		"kakao_id": created.KakaoID,
	})
	return created.ID, nil
}
