package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"kakao-auth-service/internal/auth"
	"kakao-auth-service/internal/user"
)

// memStore is an in-memory user.Store enforcing kakao_id uniqueness.
type memStore struct {
	nextID  int64
	users   map[int64]*user.User // by local id
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, users: make(map[int64]*user.User)}
}

func (m *memStore) FindByExternalID(_ context.Context, kakaoID int64) (*user.User, error) {
	for _, u := range m.users {
		if u.KakaoID == kakaoID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *memStore) Save(_ context.Context, u user.User) (*user.User, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	for _, existing := range m.users {
		if existing.KakaoID == u.KakaoID {
			return nil, fmt.Errorf("%w: kakao_id %d", auth.ErrIdentityConflict, u.KakaoID)
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = &u
	saved := u
	return &saved, nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	delete(m.users, id)
	return nil
}

func TestResolve_FirstLoginCreatesUser(t *testing.T) {
	store := newMemStore()
	r := NewStoreResolver(store)

	id, err := r.Resolve(context.Background(), &auth.Profile{
		ExternalID: 42,
		Nickname:   "Alice",
		Email:      "a@x.com",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(store.users) != 1 {
		t.Fatalf("store has %d users, want 1", len(store.users))
	}
	created := store.users[id]
	if created == nil {
		t.Fatalf("no user stored under id %d", id)
	}
	if created.KakaoID != 42 {
		t.Errorf("kakaoID = %d, want 42", created.KakaoID)
	}
	if created.Nickname != "Alice" {
		t.Errorf("nickname = %q, want Alice", created.Nickname)
	}
	if created.Email != "a@x.com" {
		t.Errorf("email = %q", created.Email)
	}
}

func TestResolve_SecondLoginReusesUser(t *testing.T) {
	store := newMemStore()
	r := NewStoreResolver(store)

	first, err := r.Resolve(context.Background(), &auth.Profile{ExternalID: 42, Nickname: "Alice"})
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := r.Resolve(context.Background(), &auth.Profile{ExternalID: 42, Nickname: "Alice Renamed"})
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if first != second {
		t.Errorf("ids differ across logins: %d vs %d", first, second)
	}
	if len(store.users) != 1 {
		t.Errorf("store has %d users, want 1", len(store.users))
	}
}

func TestResolve_NicknameFallback(t *testing.T) {
	store := newMemStore()
	r := NewStoreResolver(store)

	id, err := r.Resolve(context.Background(), &auth.Profile{ExternalID: 8})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := store.users[id].Nickname; got != "Unknown" {
		t.Errorf("nickname = %q, want Unknown", got)
	}
}

func TestResolve_ConflictSurfacesAsIdentityConflict(t *testing.T) {
	store := newMemStore()
	store.saveErr = fmt.Errorf("%w: kakao_id 9", auth.ErrIdentityConflict)
	r := NewStoreResolver(store)

	_, err := r.Resolve(context.Background(), &auth.Profile{ExternalID: 9})
	if !errors.Is(err, auth.ErrIdentityConflict) {
		t.Errorf("error = %v, want ErrIdentityConflict", err)
	}
}

func TestResolve_MissingExternalID(t *testing.T) {
	r := NewStoreResolver(newMemStore())

	if _, err := r.Resolve(context.Background(), nil); err == nil {
		t.Error("expected error for nil profile")
	}
	if _, err := r.Resolve(context.Background(), &auth.Profile{}); err == nil {
		t.Error("expected error for zero external id")
	}
}
