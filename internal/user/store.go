// Package user owns the local user record and its storage.
package user

import (
	"context"
	"time"
)

// User is the locally persisted account a Kakao identity maps to.
// The kakao_id → user_id mapping is stable, unique and append-only;
// nothing in the service ever reassigns or merges identities.
type User struct {
	ID              int64
	KakaoID         int64
	Nickname        string
	ProfileImageURL string
	Email           string
	CreatedBy       string
	ModifiedBy      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Store persists local users.
type Store interface {
	// FindByExternalID looks a user up by kakao id.
	// Returns (nil, nil) when no user exists.
	FindByExternalID(ctx context.Context, kakaoID int64) (*User, error)

	// FindByID looks a user up by local id. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id int64) (*User, error)

	// Save inserts a new user and returns it with the generated id.
	// A duplicate kakao id surfaces as auth.ErrIdentityConflict.
	Save(ctx context.Context, u User) (*User, error)

	// Delete removes a user on explicit withdrawal.
	Delete(ctx context.Context, id int64) error
}
