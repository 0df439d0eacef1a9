// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection, schema creation, and seeding.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, file-backed, the
default) and "postgres" (lib/pq).

# Schema

CreateSchema creates the three collections - app_user, camp, selection -
and is safe to call on every boot. The schema enforces the allocation
invariants at the storage layer: bed-count CHECK bounds, a UNIQUE email,
and a UNIQUE selection.user_id.

# Seeding

SeedDefaultCamps inserts the built-in default camps exactly once:

	if err := db.SeedDefaultCamps(conn); err != nil { ... }

Default camps are immune to deletion.
*/
package db
