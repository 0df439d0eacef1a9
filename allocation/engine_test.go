// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/camp-relief/models"
	"github.com/danielhkuo/camp-relief/store"
	"github.com/danielhkuo/camp-relief/testutil"
)

func TestSelectCamp(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Riverside Hall", 5, models.CampTypeDefault)

	sel, err := engine.SelectCamp(ctx, refugee.ID, camp.ID)
	if err != nil {
		t.Fatalf("SelectCamp() error = %v", err)
	}

	if sel.UserID != refugee.ID || sel.CampID != camp.ID {
		t.Errorf("selection links wrong records: %+v", sel)
	}
	if sel.UserName != refugee.Name || sel.CampName != camp.Name {
		t.Errorf("selection missing denormalized names: %+v", sel)
	}

	if beds := testutil.CampBeds(t, conn, camp.ID); beds != 4 {
		t.Errorf("expected 4 beds after selection, got %d", beds)
	}
}

func TestSelectCamp_Preconditions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	volunteer := testutil.CreateTestUser(t, conn, "Vera Okafor", models.RoleVolunteer)
	camp := testutil.CreateTestCamp(t, conn, "Riverside Hall", 5, models.CampTypeDefault)

	tests := []struct {
		name    string
		userID  string
		campID  string
		wantErr error
	}{
		{"camp not found", refugee.ID, "no-such-camp", ErrNotFound},
		{"volunteer cannot select", volunteer.ID, camp.ID, ErrForbidden},
		{"unknown user cannot select", "no-such-user", camp.ID, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.SelectCamp(ctx, tt.userID, tt.campID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SelectCamp() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// No failed attempt may have taken a bed
	if beds := testutil.CampBeds(t, conn, camp.ID); beds != 5 {
		t.Errorf("expected 5 beds after failed attempts, got %d", beds)
	}
}

func TestSelectCamp_SecondSelectionConflicts(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp1 := testutil.CreateTestCamp(t, conn, "Riverside Hall", 5, models.CampTypeDefault)
	camp2 := testutil.CreateTestCamp(t, conn, "Central Gym", 5, models.CampTypeDefault)

	if _, err := engine.SelectCamp(ctx, refugee.ID, camp1.ID); err != nil {
		t.Fatalf("first SelectCamp() error = %v", err)
	}

	// Same camp and a different camp must both refuse
	if _, err := engine.SelectCamp(ctx, refugee.ID, camp1.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("second SelectCamp(same camp) error = %v, want %v", err, ErrConflict)
	}
	if _, err := engine.SelectCamp(ctx, refugee.ID, camp2.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("second SelectCamp(other camp) error = %v, want %v", err, ErrConflict)
	}

	if n := testutil.SelectionCount(t, conn, ""); n != 1 {
		t.Errorf("expected 1 selection, got %d", n)
	}
	if beds := testutil.CampBeds(t, conn, camp2.ID); beds != 5 {
		t.Errorf("camp2 lost a bed to a refused selection: %d", beds)
	}
}

func TestSelectCamp_LastBed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	userA := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	userB := testutil.CreateTestUser(t, conn, "Bilal Rahim", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Tiny Shelter", 1, models.CampTypeDefault)

	if _, err := engine.SelectCamp(ctx, userA.ID, camp.ID); err != nil {
		t.Fatalf("SelectCamp(A) error = %v", err)
	}
	if beds := testutil.CampBeds(t, conn, camp.ID); beds != 0 {
		t.Errorf("expected 0 beds, got %d", beds)
	}

	if _, err := engine.SelectCamp(ctx, userB.ID, camp.ID); !errors.Is(err, ErrCapacityExhausted) {
		t.Errorf("SelectCamp(B) error = %v, want %v", err, ErrCapacityExhausted)
	}
}

func TestCancelSelection_RoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Riverside Hall", 5, models.CampTypeDefault)

	if _, err := engine.SelectCamp(ctx, refugee.ID, camp.ID); err != nil {
		t.Fatalf("SelectCamp() error = %v", err)
	}
	if err := engine.CancelSelection(ctx, refugee.ID); err != nil {
		t.Fatalf("CancelSelection() error = %v", err)
	}

	// Select-then-cancel restores the pre-selection state
	if beds := testutil.CampBeds(t, conn, camp.ID); beds != 5 {
		t.Errorf("expected 5 beds after cancel, got %d", beds)
	}
	if n := testutil.SelectionCount(t, conn, ""); n != 0 {
		t.Errorf("expected 0 selections after cancel, got %d", n)
	}

	// And the seat can be taken again
	if _, err := engine.SelectCamp(ctx, refugee.ID, camp.ID); err != nil {
		t.Errorf("SelectCamp() after cancel error = %v", err)
	}
}

func TestCancelSelection_NoSelection(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)

	if err := engine.CancelSelection(context.Background(), refugee.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("CancelSelection() error = %v, want %v", err, ErrNotFound)
	}
}

func TestCancelSelection_CampAlreadyGone(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Pop-up Shelter", 3, models.CampTypeVolunteer)
	testutil.CreateTestSelection(t, conn, refugee, camp)

	// Camp vanishes underneath the selection
	if _, err := conn.Exec(`DELETE FROM camp WHERE id = $1`, camp.ID); err != nil {
		t.Fatalf("failed to delete camp row: %v", err)
	}

	// Cancellation still succeeds; the bed increment is skipped silently
	if err := engine.CancelSelection(ctx, refugee.ID); err != nil {
		t.Fatalf("CancelSelection() error = %v", err)
	}
	if n := testutil.SelectionCount(t, conn, ""); n != 0 {
		t.Errorf("expected 0 selections, got %d", n)
	}
}

func TestAddCamp(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	volunteer := testutil.CreateTestUser(t, conn, "Vera Okafor", models.RoleVolunteer)

	camp, err := engine.AddCamp(ctx, volunteer.ID, "Harbor Warehouse", 20, []string{"food", "water"}, "+1-555-0130", true)
	if err != nil {
		t.Fatalf("AddCamp() error = %v", err)
	}

	if camp.CurrentBeds != 20 || camp.OriginalBeds != 20 {
		t.Errorf("expected current = original = 20, got %d/%d", camp.CurrentBeds, camp.OriginalBeds)
	}
	if camp.Type != models.CampTypeVolunteer {
		t.Errorf("expected type %q, got %q", models.CampTypeVolunteer, camp.Type)
	}
	if camp.CreatedBy != volunteer.ID {
		t.Errorf("expected creator %q, got %q", volunteer.ID, camp.CreatedBy)
	}

	camps, err := engine.ListCamps(ctx)
	if err != nil {
		t.Fatalf("ListCamps() error = %v", err)
	}
	if len(camps) != 1 || camps[0].ID != camp.ID {
		t.Errorf("ListCamps() = %+v, want the added camp", camps)
	}
}

func TestAddCamp_Validation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	volunteer := testutil.CreateTestUser(t, conn, "Vera Okafor", models.RoleVolunteer)
	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)

	tests := []struct {
		name    string
		caller  string
		camp    string
		beds    int
		wantErr error
	}{
		{"empty name", volunteer.ID, "", 10, ErrInvalidInput},
		{"blank name", volunteer.ID, "   ", 10, ErrInvalidInput},
		{"negative beds", volunteer.ID, "Annex", -1, ErrInvalidInput},
		{"refugee cannot add", refugee.ID, "Annex", 10, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.AddCamp(ctx, tt.caller, tt.camp, tt.beds, nil, "", false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddCamp() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Zero beds is a valid capacity
	if _, err := engine.AddCamp(ctx, volunteer.ID, "Overflow Annex", 0, nil, "", false); err != nil {
		t.Errorf("AddCamp(0 beds) error = %v", err)
	}
}

func TestDeleteCamp(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	volunteer := testutil.CreateTestUser(t, conn, "Vera Okafor", models.RoleVolunteer)
	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Pop-up Shelter", 10, models.CampTypeVolunteer)
	testutil.CreateTestSelection(t, conn, refugee, camp)

	if err := engine.DeleteCamp(ctx, volunteer.ID, camp.ID); err != nil {
		t.Fatalf("DeleteCamp() error = %v", err)
	}

	// Camp and its selection are both gone
	if n := testutil.SelectionCount(t, conn, camp.ID); n != 0 {
		t.Errorf("expected cascade-deleted selections, got %d", n)
	}
	camps, _ := engine.ListCamps(ctx)
	if len(camps) != 0 {
		t.Errorf("expected no camps, got %d", len(camps))
	}

	// The stranded refugee can select elsewhere
	other := testutil.CreateTestCamp(t, conn, "Central Gym", 5, models.CampTypeDefault)
	if _, err := engine.SelectCamp(ctx, refugee.ID, other.ID); err != nil {
		t.Errorf("SelectCamp() after cascade error = %v", err)
	}
}

func TestDeleteCamp_Refusals(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	volunteer := testutil.CreateTestUser(t, conn, "Vera Okafor", models.RoleVolunteer)
	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	defaultCamp := testutil.CreateTestCamp(t, conn, "Riverside Hall", 10, models.CampTypeDefault)
	addedCamp := testutil.CreateTestCamp(t, conn, "Pop-up Shelter", 10, models.CampTypeVolunteer)

	tests := []struct {
		name    string
		caller  string
		campID  string
		wantErr error
	}{
		{"camp not found", volunteer.ID, "no-such-camp", ErrNotFound},
		{"default camp immune", volunteer.ID, defaultCamp.ID, ErrForbidden},
		{"refugee cannot delete", refugee.ID, addedCamp.ID, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := engine.DeleteCamp(ctx, tt.caller, tt.campID); !errors.Is(err, tt.wantErr) {
				t.Errorf("DeleteCamp() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	camps, _ := engine.ListCamps(ctx)
	if len(camps) != 2 {
		t.Errorf("refused deletions must not remove camps, have %d", len(camps))
	}
}

func TestSelectionFor(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Riverside Hall", 5, models.CampTypeDefault)

	if _, err := engine.SelectionFor(ctx, refugee.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("SelectionFor() before selecting error = %v, want %v", err, ErrNotFound)
	}

	created, err := engine.SelectCamp(ctx, refugee.ID, camp.ID)
	if err != nil {
		t.Fatalf("SelectCamp() error = %v", err)
	}

	got, err := engine.SelectionFor(ctx, refugee.ID)
	if err != nil {
		t.Fatalf("SelectionFor() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("SelectionFor() = %+v, want %+v", got, created)
	}
}
