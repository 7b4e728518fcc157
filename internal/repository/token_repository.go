package repository

import (
	"context"
	"database/sql"
	"time"
)

// maxActiveTokens bounds how many refresh tokens a user can hold at once.
// Logging in on a sixth device silently invalidates the oldest session.
const maxActiveTokens = 5

// TokenRepo persists/validates refresh tokens (single 'token_hash' column).
// Storing a token is an atomic append-and-trim issued by the persistence
// layer rather than a read-modify-write of a whole user record, so
// concurrent logins on one account cannot lose each other's tokens.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token hash row and prunes the user's rows
// beyond the five newest.  Both statements run in one transaction.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp); err != nil {
		return err
	}
	// The derived table keeps MySQL from rejecting a delete that subqueries
	// the same table (error 1093).
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE user_id=? AND id NOT IN (
			SELECT id FROM (
				SELECT id FROM refresh_tokens WHERE user_id=? ORDER BY id DESC LIMIT ?
			) newest
		)`,
		userID, userID, maxActiveTokens); err != nil {
		return err
	}
	return tx.Commit()
}

// ValidateRefresh returns userID if a non-expired token with this hash is
// still among the user's stored tokens.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt)
	if err == sql.ErrNoRows {
		return 0, ErrRefreshNotFound
	}
	if err != nil {
		return 0, err
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, ErrRefreshNotFound
	}
	return userID, nil
}

// Rotate atomically replaces oldHash with a freshly issued token for the
// same user: the old row is deleted and the new one stored (with trim) in a
// single transaction.  ErrRefreshNotFound is returned when oldHash is no
// longer stored, e.g. because it was pruned by a later login.
func (r *TokenRepo) Rotate(ctx context.Context, userID uint64, oldHash, newHash string, exp time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=? AND token_hash=?",
		userID, oldHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRefreshNotFound
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, newHash, exp); err != nil {
		return err
	}
	return tx.Commit()
}

// RevokeByHash removes one specific token (single-session logout).
func (r *TokenRepo) RevokeByHash(ctx context.Context, userID uint64, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=? AND token_hash=?",
		userID, tokenHash)
	return err
}

// RevokeAllForUser removes every token a user holds ("log out everywhere",
// also invoked after a password change).
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_tokens WHERE user_id=?", userID)
	return err
}
