// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/votesecure/auth"
)

// DefaultRegion is the region of the seeded constituencies
const DefaultRegion = "Andhra Pradesh"

// DefaultConstituencies are seeded on every start; existing names are left alone.
var DefaultConstituencies = []string{
	"Araku", "Srikakulam", "Vizianagaram", "Visakhapatnam",
	"Anakapalli", "Kakinada", "Amalapuram", "Rajahmundry",
	"Narasapuram", "Eluru", "Machilipatnam", "Vijayawada",
	"Guntur", "Narasaraopet", "Bapatla", "Ongole",
	"Nandyal", "Kurnool", "Anantapur", "Hindupur",
	"Kadapa", "Nellore", "Tirupati", "Rajampet",
	"Chittoor",
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The same statements run on PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// SeedConstituencies inserts the given constituency names under region.
func SeedConstituencies(ctx context.Context, db *sql.DB, region string, names []string) error {
	now := time.Now().UTC().UnixMilli()
	for _, name := range names {
		id, err := auth.NewID()
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO constituencies (id, name, region, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, id, name, region, now)
		if err != nil {
			return fmt.Errorf("failed to seed constituency %q: %w", name, err)
		}
	}
	return nil
}

// Times are unix milliseconds (UTC) so comparisons behave the same on both engines.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS constituencies (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    region TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`,

	`CREATE TABLE IF NOT EXISTS voters (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    constituency TEXT NOT NULL REFERENCES constituencies(name),
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_voters_constituency ON voters(constituency)`,

	`CREATE TABLE IF NOT EXISTS admins (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL
)`,

	`CREATE TABLE IF NOT EXISTS candidates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    constituency TEXT NOT NULL REFERENCES constituencies(name),
    photo_ref TEXT,
    symbol_ref TEXT,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_constituency ON candidates(constituency)`,

	`CREATE TABLE IF NOT EXISTS elections (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    constituency TEXT NOT NULL REFERENCES constituencies(name),
    start_time BIGINT NOT NULL,
    end_time BIGINT NOT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'active', 'completed')),
    notify_status TEXT NOT NULL DEFAULT '',
    notified_at BIGINT,
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_elections_status ON elections(status)`,
	`CREATE INDEX IF NOT EXISTS idx_elections_constituency ON elections(constituency)`,

	// One vote per voter per election; this constraint is the authority, not the pre-check.
	`CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voters(id) ON DELETE CASCADE,
    election_id TEXT NOT NULL REFERENCES elections(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidates(id),
    voted_at BIGINT NOT NULL,
    UNIQUE (voter_id, election_id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_votes_election_candidate ON votes(election_id, candidate_id)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
    id TEXT PRIMARY KEY,
    action TEXT NOT NULL,
    actor_type TEXT NOT NULL,
    actor_id TEXT NOT NULL,
    election_id TEXT,
    candidate_id TEXT,
    ip_address TEXT NOT NULL DEFAULT '',
    user_agent TEXT NOT NULL DEFAULT '',
    details TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at)`,
}
