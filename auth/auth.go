// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidAPIKey = errors.New("invalid API key")
	ErrUnknownUser   = errors.New("unknown user")
)

// NewID creates a time-ordered identifier for users and works. UUIDv7 keeps
// listings in creation order without an extra column.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// ValidateAPIKey checks the operator key in constant time.
func ValidateAPIKey(provided, expected string) error {
	if expected == "" || !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidAPIKey
	}
	return nil
}

// Authenticate verifies that userID references an existing account.
// Voter sessions present their userId as a bearer token, exactly as the
// login endpoint issued it.
func Authenticate(db *sql.DB, userID string) error {
	if userID == "" {
		return ErrUnknownUser
	}

	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM account WHERE user_id = $1)
	`, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query account: %w", err)
	}
	if !exists {
		return ErrUnknownUser
	}
	return nil
}
