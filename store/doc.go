// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the durable record store for camps, users, and selections.

The allocation engine never touches SQL directly; it sees only the
narrow Store and Tx interfaces (find, list, insert, conditional update,
delete). Swapping the SQL implementation for another backend does not
touch business logic.

# Transactions

All allocation mutations go through Transact, which runs the callback
inside one database transaction and retries transient driver failures
(sqlite busy, postgres serialization conflicts) up to a small bounded
count before surfacing the error:

	err := st.Transact(ctx, func(tx store.Tx) error {
		ok, err := tx.DecrementBeds(campID)
		...
		return tx.InsertSelection(sel)
	})

# Conditional Updates

DecrementBeds is a compare-and-swap shaped update - it only takes a bed
when one is available - and InsertSelection reports ErrDuplicate when
the unique user constraint fires. These are the storage-level backstops
for the capacity and one-selection-per-user invariants.
*/
package store
