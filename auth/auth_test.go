// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/kzhou57/stagevote/db"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID failed: %v", err)
		}
		if len(id) != 36 {
			t.Fatalf("Expected canonical UUID length 36, got %d (%q)", len(id), id)
		}
		if seen[id] {
			t.Fatalf("Duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		expected string
		wantErr  bool
	}{
		{"matching key", "secret", "secret", false},
		{"wrong key", "nope", "secret", true},
		{"empty provided", "", "secret", true},
		{"empty expected rejects everything", "anything", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.provided, tt.expected)
			if tt.wantErr && !errors.Is(err, ErrInvalidAPIKey) {
				t.Errorf("Expected ErrInvalidAPIKey, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO account (user_id, username, password) VALUES ('u-1', 'alice', 'pw')
	`)
	if err != nil {
		t.Fatalf("Failed to insert account: %v", err)
	}

	if err := Authenticate(conn, "u-1"); err != nil {
		t.Errorf("Expected known user to authenticate, got %v", err)
	}
	if err := Authenticate(conn, "u-unknown"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Expected ErrUnknownUser, got %v", err)
	}
	if err := Authenticate(conn, ""); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Expected ErrUnknownUser for empty token, got %v", err)
	}
}
