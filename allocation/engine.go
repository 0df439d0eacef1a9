// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/camp-relief/models"
	"github.com/danielhkuo/camp-relief/store"
)

// Engine performs the four invariant-preserving transitions on the
// Camp/Selection pair. Nothing else may mutate bed counts or Selection
// existence.
//
// One mutex serializes all mutating transitions, so no interleaving of
// read-check-write sequences can break the capacity or uniqueness
// invariants within this process. Each transition additionally runs in
// a single store transaction with a conditional bed decrement and a
// unique constraint on selection.user_id, so the invariants hold even
// when another process shares the database. Reads inside a transition
// always touch the camp before the selection.
type Engine struct {
	store store.Store
	mu    sync.Mutex
}

func New(s store.Store) *Engine {
	return &Engine{store: s}
}

// SelectCamp claims one bed at campID for a refugee. The bed decrement
// and the selection insert commit as a unit.
func (e *Engine) SelectCamp(ctx context.Context, userID, campID string) (models.Selection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var sel models.Selection
	err := e.store.Transact(ctx, func(tx store.Tx) error {
		camp, err := tx.CampByID(campID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		user, err := e.requireRole(tx, userID, models.RoleRefugee)
		if err != nil {
			return err
		}

		_, err = tx.SelectionByUser(userID)
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		ok, err := tx.DecrementBeds(campID)
		if err != nil {
			return err
		}
		if !ok {
			// Camp existence was established above in this same
			// transaction, so zero rows means zero beds.
			return ErrCapacityExhausted
		}

		sel = models.Selection{
			ID:        uuid.NewString(),
			UserID:    userID,
			CampID:    campID,
			UserName:  user.Name,
			CampName:  camp.Name,
			CreatedAt: time.Now(),
		}
		if err := tx.InsertSelection(sel); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return models.Selection{}, err
	}
	return sel, nil
}

// CancelSelection releases the caller's bed and removes the selection.
// If the camp has since been deleted the increment is silently skipped.
func (e *Engine) CancelSelection(ctx context.Context, userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Transact(ctx, func(tx store.Tx) error {
		sel, err := tx.SelectionByUser(userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.IncrementBeds(sel.CampID); err != nil {
			return err
		}
		if _, err := tx.DeleteSelectionByUser(userID); err != nil {
			return err
		}
		return nil
	})
}

// AddCamp registers a volunteer-added camp with current = original = beds.
func (e *Engine) AddCamp(ctx context.Context, volunteerID, name string, beds int, resources []string, contact string, ambulance bool) (models.Camp, error) {
	if strings.TrimSpace(name) == "" {
		return models.Camp{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if beds < 0 {
		return models.Camp{}, fmt.Errorf("%w: bed count must be non-negative", ErrInvalidInput)
	}
	if resources == nil {
		resources = []string{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var camp models.Camp
	err := e.store.Transact(ctx, func(tx store.Tx) error {
		if _, err := e.requireRole(tx, volunteerID, models.RoleVolunteer); err != nil {
			return err
		}

		camp = models.Camp{
			ID:           uuid.NewString(),
			Name:         name,
			CurrentBeds:  beds,
			OriginalBeds: beds,
			Resources:    resources,
			Contact:      contact,
			Ambulance:    ambulance,
			Type:         models.CampTypeVolunteer,
			CreatedBy:    volunteerID,
			CreatedAt:    time.Now(),
		}
		return tx.InsertCamp(camp)
	})
	if err != nil {
		return models.Camp{}, err
	}
	return camp, nil
}

// DeleteCamp removes a volunteer-added camp and cascade-deletes its
// selections as one unit. Affected refugees lose their selection with
// no compensating bed elsewhere; the camp is gone.
func (e *Engine) DeleteCamp(ctx context.Context, volunteerID, campID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Transact(ctx, func(tx store.Tx) error {
		camp, err := tx.CampByID(campID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if _, err := e.requireRole(tx, volunteerID, models.RoleVolunteer); err != nil {
			return err
		}
		if camp.Type == models.CampTypeDefault {
			return ErrForbidden
		}

		if _, err := tx.DeleteSelectionsByCamp(campID); err != nil {
			return err
		}
		ok, err := tx.DeleteCamp(campID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	})
}

// ListCamps returns every camp. Plain read, no serialization needed.
func (e *Engine) ListCamps(ctx context.Context) ([]models.Camp, error) {
	return e.store.Camps(ctx)
}

// SelectionFor returns the user's active selection.
func (e *Engine) SelectionFor(ctx context.Context, userID string) (models.Selection, error) {
	sel, err := e.store.SelectionByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.Selection{}, ErrNotFound
	}
	return sel, err
}

// requireRole is the single authorization check every transition runs
// before mutating. An unknown caller cannot establish a role and is
// treated the same as a wrong one.
func (e *Engine) requireRole(tx store.Tx, userID, role string) (models.User, error) {
	user, err := tx.UserByID(userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrForbidden
	}
	if err != nil {
		return models.User{}, err
	}
	if user.Role != role {
		return models.User{}, ErrForbidden
	}
	return user, nil
}
