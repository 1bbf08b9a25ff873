package auth

import (
	"database/sql"
	"time"

	"github.com/mockstage/interviewd/src/common/errors"
)

// TokenStore handles revoked-token persistence
type TokenStore struct {
	db *sql.DB
}

// NewTokenStore creates a new token store
func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Revoke marks a token id as revoked until its original expiry
func (s *TokenStore) Revoke(tokenID, userID string, expiresAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO revoked_tokens (token_id, user_id, expires_at)
		VALUES (?, ?, ?)
	`, tokenID, userID, expiresAt)
	if err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	return nil
}

// IsRevoked reports whether a token id has been revoked
func (s *TokenStore) IsRevoked(tokenID string) (bool, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM revoked_tokens WHERE token_id = ?", tokenID).Scan(&count); err != nil {
		return false, errors.ErrDatabaseQuery.WithCause(err)
	}
	return count > 0, nil
}

// CleanupExpired removes revocation records whose tokens have expired anyway
func (s *TokenStore) CleanupExpired() error {
	_, err := s.db.Exec("DELETE FROM revoked_tokens WHERE expires_at < ?", time.Now().UTC())
	if err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	return nil
}
