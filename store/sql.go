// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/camp-relief/models"
)

// maxAttempts bounds internal retries of transient driver failures
// (sqlite busy, postgres serialization) before surfacing the error.
const maxAttempts = 3

// SQLStore implements Store over database/sql. The SQL uses $n
// placeholders in strict first-occurrence order, which binds correctly
// under both lib/pq and modernc.org/sqlite.
type SQLStore struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Transact runs fn inside one transaction, retrying transient failures.
func (s *SQLStore) Transact(ctx context.Context, fn func(Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.transactOnce(ctx, fn)
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt < maxAttempts {
			slog.Warn("retrying transaction after transient failure", "attempt", attempt, "error", err)
			select {
			case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func (s *SQLStore) transactOnce(ctx context.Context, fn func(Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Autocommit reads

func (s *SQLStore) Camps(ctx context.Context) ([]models.Camp, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, current_beds, original_beds, resources, contact, ambulance, camp_type, created_by, created_at
		FROM camp ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query camps: %w", err)
	}
	defer rows.Close()

	camps := []models.Camp{}
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, camp)
	}
	return camps, rows.Err()
}

func (s *SQLStore) CampByID(ctx context.Context, id string) (models.Camp, error) {
	return scanCamp(s.db.QueryRowContext(ctx, campQuery, id))
}

func (s *SQLStore) UserByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, userQuery+` WHERE id = $1`, id))
}

func (s *SQLStore) UserByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, userQuery+` WHERE email = $1`, email))
}

func (s *SQLStore) InsertUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_user (id, name, email, pass_hash, role, address, needs, skills, availability, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.Address, user.Needs, user.Skills, user.Availability, user.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *SQLStore) SelectionByUser(ctx context.Context, userID string) (models.Selection, error) {
	return scanSelection(s.db.QueryRowContext(ctx, selectionQuery, userID))
}

// Transactional surface

type sqlTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqlTx) UserByID(id string) (models.User, error) {
	return scanUser(t.tx.QueryRowContext(t.ctx, userQuery+` WHERE id = $1`, id))
}

func (t *sqlTx) CampByID(id string) (models.Camp, error) {
	return scanCamp(t.tx.QueryRowContext(t.ctx, campQuery, id))
}

func (t *sqlTx) InsertCamp(camp models.Camp) error {
	resources, err := json.Marshal(camp.Resources)
	if err != nil {
		return fmt.Errorf("failed to encode resources: %w", err)
	}

	_, err = t.tx.ExecContext(t.ctx, `
		INSERT INTO camp (id, name, current_beds, original_beds, resources, contact, ambulance, camp_type, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, camp.ID, camp.Name, camp.CurrentBeds, camp.OriginalBeds, string(resources),
		camp.Contact, camp.Ambulance, camp.Type, camp.CreatedBy, camp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert camp: %w", err)
	}
	return nil
}

func (t *sqlTx) DeleteCamp(id string) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `DELETE FROM camp WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete camp: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (t *sqlTx) DecrementBeds(campID string) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `
		UPDATE camp SET current_beds = current_beds - 1
		WHERE id = $1 AND current_beds > 0
	`, campID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement beds: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (t *sqlTx) IncrementBeds(campID string) error {
	// The current_beds < original_beds guard keeps the increment inside
	// the capacity bound; a vanished camp simply affects zero rows.
	_, err := t.tx.ExecContext(t.ctx, `
		UPDATE camp SET current_beds = current_beds + 1
		WHERE id = $1 AND current_beds < original_beds
	`, campID)
	if err != nil {
		return fmt.Errorf("failed to increment beds: %w", err)
	}
	return nil
}

func (t *sqlTx) SelectionByUser(userID string) (models.Selection, error) {
	return scanSelection(t.tx.QueryRowContext(t.ctx, selectionQuery, userID))
}

func (t *sqlTx) InsertSelection(sel models.Selection) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO selection (id, user_id, camp_id, user_name, camp_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sel.ID, sel.UserID, sel.CampID, sel.UserName, sel.CampName, sel.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert selection: %w", err)
	}
	return nil
}

func (t *sqlTx) DeleteSelectionByUser(userID string) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `DELETE FROM selection WHERE user_id = $1`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (t *sqlTx) DeleteSelectionsByCamp(campID string) (int64, error) {
	res, err := t.tx.ExecContext(t.ctx, `DELETE FROM selection WHERE camp_id = $1`, campID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete camp selections: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// Row scanning

const campQuery = `
	SELECT id, name, current_beds, original_beds, resources, contact, ambulance, camp_type, created_by, created_at
	FROM camp WHERE id = $1
`

const userQuery = `
	SELECT id, name, email, pass_hash, role, address, needs, skills, availability, created_at
	FROM app_user
`

const selectionQuery = `
	SELECT id, user_id, camp_id, user_name, camp_name, created_at
	FROM selection WHERE user_id = $1
`

type scanner interface {
	Scan(dest ...any) error
}

func scanCamp(row scanner) (models.Camp, error) {
	var camp models.Camp
	var resources string
	err := row.Scan(&camp.ID, &camp.Name, &camp.CurrentBeds, &camp.OriginalBeds,
		&resources, &camp.Contact, &camp.Ambulance, &camp.Type, &camp.CreatedBy, &camp.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Camp{}, ErrNotFound
	}
	if err != nil {
		return models.Camp{}, fmt.Errorf("failed to scan camp: %w", err)
	}
	if err := json.Unmarshal([]byte(resources), &camp.Resources); err != nil {
		return models.Camp{}, fmt.Errorf("failed to decode resources: %w", err)
	}
	return camp, nil
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.Address, &user.Needs, &user.Skills, &user.Availability, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

func scanSelection(row scanner) (models.Selection, error) {
	var sel models.Selection
	err := row.Scan(&sel.ID, &sel.UserID, &sel.CampID, &sel.UserName, &sel.CampName, &sel.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Selection{}, ErrNotFound
	}
	if err != nil {
		return models.Selection{}, fmt.Errorf("failed to scan selection: %w", err)
	}
	return sel, nil
}

// Driver error classification. Both drivers only expose these conditions
// through error text.

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}
