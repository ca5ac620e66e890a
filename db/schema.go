// Copyright (c) 2025 Kai Zhou.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL sticks to the
// dialect subset shared by postgres and sqlite; databaseType picks the one
// construct the dialects spell differently, the vote log's auto-assigned
// sequence column.
func CreateSchema(db *sql.DB, databaseType string) error {
	// sqlite: INTEGER PRIMARY KEY aliases the rowid and auto-assigns.
	seqType := "BIGSERIAL"
	if databaseType == "sqlite" {
		seqType = "INTEGER"
	}

	_, err := db.Exec(fmt.Sprintf(schema, seqType))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voter accounts. weight is free-form text on purpose: operators import it
-- from spreadsheets and non-numeric values fall back to 1 at read time.
CREATE TABLE IF NOT EXISTS account (
    user_id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password TEXT NOT NULL,
    weight TEXT
);

-- Competing entries
CREATE TABLE IF NOT EXISTS work (
    work_id TEXT PRIMARY KEY,
    title TEXT NOT NULL
);

-- Append-only vote log. Deliberately no unique constraint on
-- (work_id, user_id): a user may vote for the same work many times and only
-- the latest row is live, resolved at read time. seq fixes the append order;
-- ts alone cannot, it has one-second resolution.
CREATE TABLE IF NOT EXISTS vote (
    seq %s PRIMARY KEY,
    work_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    points INTEGER NOT NULL,
    ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_work_id ON vote(work_id);

-- Audience messages
CREATE TABLE IF NOT EXISTS message (
    user_id TEXT NOT NULL,
    work_id TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at BIGINT NOT NULL
);
`
