// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open accepts "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections enable foreign keys, WAL, a busy timeout and
immediate write transactions.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
SeedConstituencies inserts reference constituencies with ON CONFLICT DO NOTHING.

# Tables

  - constituencies: electoral districts (name unique)
  - voters: verified voters only
  - admins: administrator accounts
  - candidates: scoped to a constituency
  - elections: window, latched status and last notification outcome
  - votes: one row per (voter_id, election_id)
  - audit_logs: append-only action trail

# Relationships

	constituencies 1──* voters
	constituencies 1──* candidates
	constituencies 1──* elections
	elections 1──* votes (ON DELETE CASCADE)
	voters 1──* votes (ON DELETE CASCADE)
	candidates 1──* votes

All instants are stored as UTC unix milliseconds.

# Constraint Errors

IsUniqueViolation recognises unique violations from both drivers
(pq code 23505, SQLITE_CONSTRAINT_UNIQUE / SQLITE_CONSTRAINT_PRIMARYKEY).
*/
package db
