// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/camp-relief/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// RequireAuth gates a handler behind a bearer token. A missing token is
// 401; a token that fails verification (bad signature, expired) is 403.
// Verified claims are stored on the request context for ClaimsFrom.
func RequireAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
			return
		}

		claims, err := auth.ParseToken(token, secret)
		if err != nil {
			ErrorResponse(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// ClaimsFrom returns the verified claims RequireAuth stored on the
// request. Nil when the handler was not wrapped with RequireAuth.
func ClaimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}
