package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"kakao-auth-service/internal/auth"
	"kakao-auth-service/internal/db"
)

// pq error code for unique_violation
const uniqueViolation = "23505"

// PostgresStore is the canonical Store backed by the users table.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) FindByExternalID(ctx context.Context, kakaoID int64) (*User, error) {
	return s.findOne(ctx, `
		SELECT user_id, kakao_id, nickname,
		       COALESCE(profile_image_url, ''), COALESCE(email, ''),
		       COALESCE(created_by, ''), COALESCE(modified_by, ''),
		       created_at, updated_at
		FROM users
		WHERE kakao_id = $1
	`, kakaoID)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.findOne(ctx, `
		SELECT user_id, kakao_id, nickname,
		       COALESCE(profile_image_url, ''), COALESCE(email, ''),
		       COALESCE(created_by, ''), COALESCE(modified_by, ''),
		       created_at, updated_at
		FROM users
		WHERE user_id = $1
	`, id)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.KakaoID,
		&u.Nickname,
		&u.ProfileImageURL,
		&u.Email,
		&u.CreatedBy,
		&u.ModifiedBy,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: query: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) Save(ctx context.Context, u User) (*User, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (kakao_id, nickname, profile_image_url, email, created_by, modified_by)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $5)
		RETURNING user_id, created_at, updated_at
	`,
		u.KakaoID,
		u.Nickname,
		u.ProfileImageURL,
		u.Email,
		u.CreatedBy,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: kakao_id %d", auth.ErrIdentityConflict, u.KakaoID)
		}
		return nil, fmt.Errorf("user: insert: %w", err)
	}
	u.ModifiedBy = u.CreatedBy
	return &u, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("user: delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
