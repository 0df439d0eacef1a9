// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and environment.

CLI flags take precedence over environment variables:

  - PORT (-p): server port (default 3320)
  - DATABASE_URL (-d): database location; defaults to a local sqlite file
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - JWT_SECRET (--jwt-secret): token signing secret, required

A postgres database type requires an explicit DATABASE_URL.
*/
package cliparse
