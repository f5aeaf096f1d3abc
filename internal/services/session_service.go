package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SessionServiceProvider defines the interface for the logout denylist.
type SessionServiceProvider interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PruneExpired(ctx context.Context) (int64, error)
}

// SessionService keeps revoked token ids until their natural expiry, so a
// logged-out token stops working before the signature itself expires.
type SessionService struct {
	db *sql.DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB) *SessionService {
	return &SessionService{db: db}
}

// Revoke records a token id until expiresAt. Revoking twice is harmless.
func (s *SessionService) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO revoked_tokens(jti, expires_at) VALUES(?, ?)", jti, expiresAt)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (s *SessionService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM revoked_tokens WHERE jti = ?", jti).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking revocation: %w", err)
	}
	return count > 0, nil
}

// PruneExpired drops denylist rows whose tokens have expired on their own.
func (s *SessionService) PruneExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM revoked_tokens WHERE expires_at <= ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("pruning revoked tokens: %w", err)
	}
	return res.RowsAffected()
}
