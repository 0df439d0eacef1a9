// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/camp-relief/models"
	"github.com/danielhkuo/camp-relief/store"
	"github.com/danielhkuo/camp-relief/testutil"
)

// TestConcurrentSelections_CapacityBound verifies that N refugees racing
// for K < N beds produce exactly K selections and N-K capacity refusals,
// never an oversold camp.
func TestConcurrentSelections_CapacityBound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	const numUsers = 10
	const beds = 3

	camp := testutil.CreateTestCamp(t, conn, "Contested Shelter", beds, models.CampTypeDefault)

	users := make([]models.User, numUsers)
	for i := range users {
		users[i] = testutil.CreateTestUser(t, conn, fmt.Sprintf("Refugee %c", 'A'+i), models.RoleRefugee)
	}

	var successCount, exhaustedCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			_, err := engine.SelectCamp(ctx, users[idx].ID, camp.ID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrCapacityExhausted):
				exhaustedCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != beds {
		t.Errorf("expected exactly %d successes, got %d", beds, successCount.Load())
	}
	if exhaustedCount.Load() != numUsers-beds {
		t.Errorf("expected %d capacity refusals, got %d", numUsers-beds, exhaustedCount.Load())
	}

	if got := testutil.CampBeds(t, conn, camp.ID); got != 0 {
		t.Errorf("expected 0 beds left, got %d", got)
	}
	if n := testutil.SelectionCount(t, conn, camp.ID); n != beds {
		t.Errorf("expected %d selections in database, got %d", beds, n)
	}
}

// TestConcurrentSelections_SameUser verifies that one user firing N
// simultaneous selections ends up with exactly one, the rest refused
// as conflicts.
func TestConcurrentSelections_SameUser(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	const attempts = 8

	refugee := testutil.CreateTestUser(t, conn, "Amal Haddad", models.RoleRefugee)
	camp := testutil.CreateTestCamp(t, conn, "Big Shelter", 50, models.CampTypeDefault)

	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := engine.SelectCamp(ctx, refugee.ID, camp.ID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, ErrConflict):
				conflictCount.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("expected exactly 1 success, got %d", successCount.Load())
	}
	if conflictCount.Load() != attempts-1 {
		t.Errorf("expected %d conflicts, got %d", attempts-1, conflictCount.Load())
	}

	// Exactly one bed taken
	if got := testutil.CampBeds(t, conn, camp.ID); got != 49 {
		t.Errorf("expected 49 beds left, got %d", got)
	}
	if n := testutil.SelectionCount(t, conn, ""); n != 1 {
		t.Errorf("expected 1 selection in database, got %d", n)
	}
}

// TestConcurrentSelectAndCancel churns selections and cancellations and
// then checks the cross-entity invariant: beds handed out plus beds free
// always equals the original capacity.
func TestConcurrentSelectAndCancel(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	const numUsers = 6
	const beds = 4

	camp := testutil.CreateTestCamp(t, conn, "Churn Shelter", beds, models.CampTypeDefault)

	users := make([]models.User, numUsers)
	for i := range users {
		users[i] = testutil.CreateTestUser(t, conn, fmt.Sprintf("Churner %c", 'A'+i), models.RoleRefugee)
	}

	var wg sync.WaitGroup
	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// Select, cancel, select again; outcomes may legitimately
			// differ per interleaving, the invariant may not.
			for round := 0; round < 3; round++ {
				if _, err := engine.SelectCamp(ctx, users[idx].ID, camp.ID); err == nil {
					if round < 2 {
						if err := engine.CancelSelection(ctx, users[idx].ID); err != nil {
							t.Errorf("CancelSelection() error = %v", err)
						}
					}
				}
			}
		}(i)
	}

	wg.Wait()

	free := testutil.CampBeds(t, conn, camp.ID)
	taken := testutil.SelectionCount(t, conn, camp.ID)
	if free+taken != beds {
		t.Errorf("invariant broken: %d free + %d taken != %d original", free, taken, beds)
	}
	if free < 0 || free > beds {
		t.Errorf("bed count out of bounds: %d", free)
	}
}

// TestParallelCamps verifies that selections against different camps
// don't interfere with each other.
func TestParallelCamps(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	engine := New(store.NewSQL(conn))
	ctx := context.Background()

	const numCamps = 4

	var wg sync.WaitGroup
	for i := 0; i < numCamps; i++ {
		camp := testutil.CreateTestCamp(t, conn, fmt.Sprintf("Camp %c", 'A'+i), 2, models.CampTypeDefault)
		u1 := testutil.CreateTestUser(t, conn, fmt.Sprintf("First %c", 'A'+i), models.RoleRefugee)
		u2 := testutil.CreateTestUser(t, conn, fmt.Sprintf("Second %c", 'A'+i), models.RoleRefugee)

		wg.Add(1)
		go func(campID, u1ID, u2ID string) {
			defer wg.Done()

			if _, err := engine.SelectCamp(ctx, u1ID, campID); err != nil {
				t.Errorf("SelectCamp(u1) error = %v", err)
			}
			if _, err := engine.SelectCamp(ctx, u2ID, campID); err != nil {
				t.Errorf("SelectCamp(u2) error = %v", err)
			}
			if got := testutil.CampBeds(t, conn, campID); got != 0 {
				t.Errorf("expected camp fully booked, got %d beds", got)
			}
		}(camp.ID, u1.ID, u2.ID)
	}

	wg.Wait()
}
