// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/votesecure/db"
	"github.com/danielhkuo/votesecure/models"
)

// ListConstituencies returns all constituencies ordered by name
func (q *Queries) ListConstituencies(ctx context.Context) ([]models.Constituency, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, region, created_at
		FROM constituencies
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query constituencies: %w", err)
	}
	defer rows.Close()

	constituencies := []models.Constituency{}
	for rows.Next() {
		var c models.Constituency
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Region, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan constituency: %w", err)
		}
		c.CreatedAt = fromMillis(createdAt)
		constituencies = append(constituencies, c)
	}
	return constituencies, rows.Err()
}

func (q *Queries) ConstituencyExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM constituencies WHERE name = $1)
	`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check constituency: %w", err)
	}
	return exists, nil
}

// InsertVoter persists a verified voter. A taken email returns ErrDuplicate.
func (q *Queries) InsertVoter(ctx context.Context, v models.Voter) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO voters (id, name, email, password_hash, constituency, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.ID, v.Name, v.Email, v.PasswordHash, v.Constituency, v.IsVerified, toMillis(v.CreatedAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

const voterColumns = `id, name, email, password_hash, constituency, is_verified, created_at`

func scanVoter(row interface{ Scan(...interface{}) error }) (models.Voter, error) {
	var v models.Voter
	var createdAt int64
	err := row.Scan(&v.ID, &v.Name, &v.Email, &v.PasswordHash, &v.Constituency, &v.IsVerified, &createdAt)
	v.CreatedAt = fromMillis(createdAt)
	return v, err
}

func (q *Queries) GetVoter(ctx context.Context, id string) (models.Voter, error) {
	v, err := scanVoter(q.db.QueryRowContext(ctx, `
		SELECT `+voterColumns+` FROM voters WHERE id = $1
	`, id))
	if err != nil {
		return models.Voter{}, notFound(err, "voter")
	}
	return v, nil
}

func (q *Queries) GetVoterByEmail(ctx context.Context, email string) (models.Voter, error) {
	v, err := scanVoter(q.db.QueryRowContext(ctx, `
		SELECT `+voterColumns+` FROM voters WHERE email = $1
	`, email))
	if err != nil {
		return models.Voter{}, notFound(err, "voter")
	}
	return v, nil
}

func (q *Queries) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voters WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// VoterEmails returns the addresses of verified voters in a constituency
func (q *Queries) VoterEmails(ctx context.Context, constituency string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT email FROM voters
		WHERE constituency = $1 AND is_verified = $2 AND email != ''
		ORDER BY id
	`, constituency, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan voter email: %w", err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (q *Queries) CountVoters(ctx context.Context) (int, error) {
	return count(ctx, q.db, `SELECT COUNT(*) FROM voters`)
}

// InsertAdmin persists an administrator. A taken username returns ErrDuplicate.
func (q *Queries) InsertAdmin(ctx context.Context, a models.Admin) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.Username, a.PasswordHash, toMillis(a.CreatedAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

func (q *Queries) GetAdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	var createdAt int64
	err := q.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admins WHERE username = $1
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &createdAt)
	if err != nil {
		return models.Admin{}, notFound(err, "admin")
	}
	a.CreatedAt = fromMillis(createdAt)
	return a, nil
}
