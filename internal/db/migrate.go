package db

import (
	"context"
	"database/sql"
)

const usersMigration = `
CREATE TABLE IF NOT EXISTS users (
    user_id bigserial PRIMARY KEY,
    kakao_id bigint NOT NULL,
    nickname text NOT NULL,
    profile_image_url varchar(500),
    email text,
    created_by text,
    modified_by text,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT users_kakao_id_unique UNIQUE (kakao_id)
);

CREATE INDEX IF NOT EXISTS users_kakao_id_idx
ON users (kakao_id);
`

// RunMigration creates the users table. The kakao_id uniqueness
// constraint is the backstop for concurrent first-logins of the same
// external identity.
func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, usersMigration)
	return err
}
