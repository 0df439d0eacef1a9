// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Open connects to the configured database. databaseType is "sqlite" or
// "postgres"; databaseURL is a file path for sqlite or a connection string
// for postgres.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "sqlite":
		conn, err := sql.Open("sqlite", sqliteDSN(databaseURL))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return conn, nil
	case "postgres":
		conn, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// sqliteDSN adds a busy_timeout so parallel writers wait for the lock
// instead of failing immediately. Selection cascades are performed by
// the allocation engine, not the driver.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}
