// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "errors"

// Business-rule violations surfaced by engine transitions. Handlers
// translate these to HTTP status codes with errors.Is; anything else
// coming out of the engine is a storage failure.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrCapacityExhausted = errors.New("no beds available")
)
