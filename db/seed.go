// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/camp-relief/models"
)

// defaultCamps are created once at first boot. They have no creator
// and can never be deleted.
var defaultCamps = []models.Camp{
	{
		Name:         "Riverside Community Hall",
		CurrentBeds:  60,
		OriginalBeds: 60,
		Resources:    []string{"food", "water", "blankets", "first aid"},
		Contact:      "+1-555-0101",
		Ambulance:    true,
	},
	{
		Name:         "Central School Gymnasium",
		CurrentBeds:  120,
		OriginalBeds: 120,
		Resources:    []string{"food", "water", "blankets"},
		Contact:      "+1-555-0102",
		Ambulance:    false,
	},
	{
		Name:         "Hillside Church Shelter",
		CurrentBeds:  35,
		OriginalBeds: 35,
		Resources:    []string{"food", "water", "medical supplies"},
		Contact:      "+1-555-0103",
		Ambulance:    true,
	},
}

// SeedDefaultCamps inserts the built-in camps if none exist yet.
// Idempotent across restarts: the check and the inserts share one
// transaction, so two booting processes cannot both seed.
func SeedDefaultCamps(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM camp WHERE camp_type = $1`, models.CampTypeDefault).Scan(&count); err != nil {
		return fmt.Errorf("failed to count default camps: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, camp := range defaultCamps {
		resources, err := json.Marshal(camp.Resources)
		if err != nil {
			return fmt.Errorf("failed to encode resources: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO camp (id, name, current_beds, original_beds, resources, contact, ambulance, camp_type, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.NewString(), camp.Name, camp.CurrentBeds, camp.OriginalBeds, string(resources),
			camp.Contact, camp.Ambulance, models.CampTypeDefault, "", time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed camp %q: %w", camp.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	slog.Info("seeded default camps", "count", len(defaultCamps))
	return nil
}
