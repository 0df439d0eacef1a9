// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the camp-relief API server.

camp-relief coordinates relief-camp bed allocation during a disaster
response: volunteers register camps with bed capacity, refugees select
exactly one camp, and bed counts move with selections and cancellations
under strict capacity invariants.

# Starting the Server

The server reads configuration from environment variables or CLI flags:

	JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3320 -t sqlite -d camp-relief.db

# Configuration

Required settings:

  - JWT_SECRET (--jwt-secret): Secret for signing bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 3320)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): sqlite file path or postgres connection string

# Architecture

The server uses a handler-based architecture with dependency injection:

  - allocation: the engine enforcing bed-capacity and one-selection-
    per-user invariants (the only code that mutates them)
  - store: durable record storage behind a narrow interface
  - handlers: HTTP request handlers (accounts, camps, selections)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, bearer auth
  - models: Request/response and domain types
  - auth: Password hashing and token issue/verify
  - db: Connection, schema creation, default-camp seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
