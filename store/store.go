// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/camp-relief/models"
)

var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means an insert hit a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Tx is the narrow per-entity surface available inside one transaction.
// Everything in a Tx callback commits or rolls back as a unit.
type Tx interface {
	UserByID(id string) (models.User, error)

	CampByID(id string) (models.Camp, error)
	InsertCamp(camp models.Camp) error
	// DeleteCamp removes a camp row. Returns false when the camp was
	// already gone.
	DeleteCamp(id string) (bool, error)
	// DecrementBeds conditionally takes one bed. Returns false when the
	// camp has no beds left (or no longer exists); the caller decides
	// which it is.
	DecrementBeds(campID string) (bool, error)
	// IncrementBeds returns one bed, bounded by the camp's original
	// capacity. A camp that no longer exists is silently skipped.
	IncrementBeds(campID string) error

	SelectionByUser(userID string) (models.Selection, error)
	InsertSelection(sel models.Selection) error
	DeleteSelectionByUser(userID string) (bool, error)
	DeleteSelectionsByCamp(campID string) (int64, error)
}

// Store is durable record storage for camps, users, and selections.
// The allocation engine performs every mutation through Transact;
// the remaining methods are autocommit reads plus account creation.
type Store interface {
	Transact(ctx context.Context, fn func(Tx) error) error

	Camps(ctx context.Context) ([]models.Camp, error)
	CampByID(ctx context.Context, id string) (models.Camp, error)
	UserByID(ctx context.Context, id string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	InsertUser(ctx context.Context, user models.User) error
	SelectionByUser(ctx context.Context, userID string) (models.Selection, error)
}
