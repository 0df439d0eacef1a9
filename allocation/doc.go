// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package allocation enforces the bed-capacity invariants across
concurrent requests. It is the only code allowed to mutate camp bed
counts or selection rows.

# Transitions

The engine performs exactly four state transitions:

	sel, err := engine.SelectCamp(ctx, userID, campID)
	err := engine.CancelSelection(ctx, userID)
	camp, err := engine.AddCamp(ctx, volunteerID, name, beds, resources, contact, ambulance)
	err := engine.DeleteCamp(ctx, volunteerID, campID)

plus the read paths ListCamps and SelectionFor.

# Invariants

For every camp, 0 <= current_beds <= original_beds, and
current_beds = original_beds - (active selections referencing it).
Every user has at most one active selection.

A naive read-check-write here is racy: two concurrent selections of a
camp with one bed left can both observe beds > 0. The engine serializes
all mutating transitions behind one mutex and runs each inside a single
store transaction whose bed decrement is conditional, so exactly one of
the two wins and the loser gets ErrCapacityExhausted.

# Errors

Violated preconditions come back as the sentinel errors in errors.go
(ErrNotFound, ErrForbidden, ErrConflict, ErrCapacityExhausted,
ErrInvalidInput); check them with errors.Is.
*/
package allocation
