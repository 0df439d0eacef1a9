// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL sticks to the dialect subset shared by sqlite and postgres.
// The UNIQUE on selection.user_id is the one-selection-per-user invariant;
// the bed-count CHECKs are the capacity invariant. Both back up the
// allocation engine at the storage layer.
const schema = `
-- Accounts
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    pass_hash TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('volunteer', 'refugee')),
    address TEXT NOT NULL DEFAULT '',
    needs TEXT NOT NULL DEFAULT '',
    skills TEXT NOT NULL DEFAULT '',
    availability TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_app_user_email ON app_user(email);

-- Relief camps
CREATE TABLE IF NOT EXISTS camp (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    current_beds INTEGER NOT NULL CHECK (current_beds >= 0),
    original_beds INTEGER NOT NULL CHECK (original_beds >= 0),
    resources TEXT NOT NULL DEFAULT '[]',
    contact TEXT NOT NULL DEFAULT '',
    ambulance BOOLEAN NOT NULL DEFAULT FALSE,
    camp_type TEXT NOT NULL CHECK (camp_type IN ('default', 'volunteer-added')),
    created_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    CHECK (current_beds <= original_beds)
);

CREATE INDEX IF NOT EXISTS idx_camp_type ON camp(camp_type);

-- Bed selections
CREATE TABLE IF NOT EXISTS selection (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL UNIQUE REFERENCES app_user(id),
    camp_id TEXT NOT NULL REFERENCES camp(id) ON DELETE CASCADE,
    user_name TEXT NOT NULL,
    camp_name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_selection_camp_id ON selection(camp_id);
`
