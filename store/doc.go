// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the SQL for every table.

Queries work against a *sql.DB or a *sql.Tx:

	q := store.New(db)
	err := store.InTx(ctx, db, func(q *store.Queries) error { ... })

Times are stored as UTC unix milliseconds so both drivers compare them
the same way. Missing rows return ErrNotFound; unique constraint
failures return ErrDuplicate.
*/
package store
