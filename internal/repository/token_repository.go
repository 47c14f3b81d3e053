package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo persists refresh tokens by their SHA-256 hash.  The raw
// token never touches the database, so a leaked table cannot be
// replayed against the refresh endpoint.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a freshly issued token hash for the user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, hash string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, hash, expiresAt)
	return err
}

// ValidateRefresh resolves a hash to its owning user.  Revoked and
// expired rows answer exactly like missing ones so callers cannot
// distinguish the cases.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, hash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		hash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid || time.Now().UTC().After(expiresAt) {
		return 0, sql.ErrNoRows
	}
	return userID, nil
}

// RevokeByHash revokes a single token, typically on logout.
func (r *TokenRepo) RevokeByHash(ctx context.Context, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		hash)
	return err
}

// RevokeAllForUser revokes every live token the user still holds.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
