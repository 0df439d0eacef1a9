// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: request start/completion logging via slog
  - CORS: cross-origin headers and preflight handling
  - RequireAuth: bearer-token verification; stores claims on the context

RequireAuth distinguishes a missing token (401) from one that fails
verification (403). Handlers read the verified identity with:

	claims := middleware.ClaimsFrom(r)

Role enforcement happens inside the allocation engine, not here; the
middleware only establishes who is calling.

# JSON Helpers

  - JSONResponse: write a JSON response with status code
  - ErrorResponse: write a structured error ({error, message})
  - ParseJSONBody: decode a request body

# Utilities

GetClientIP extracts the client IP, honoring X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr.
*/
package middleware
