// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/votesecure/models"
)

// ErrCandidateHasVotes is returned when deleting a candidate that already received
// votes, or moving one to another constituency
var ErrCandidateHasVotes = errors.New("candidate has recorded votes")

const candidateColumns = `id, name, party, constituency, photo_ref, symbol_ref, created_at`

func scanCandidate(row interface{ Scan(...interface{}) error }) (models.Candidate, error) {
	var c models.Candidate
	var createdAt int64
	err := row.Scan(&c.ID, &c.Name, &c.Party, &c.Constituency, &c.PhotoRef, &c.SymbolRef, &createdAt)
	c.CreatedAt = fromMillis(createdAt)
	return c, err
}

func (q *Queries) InsertCandidate(ctx context.Context, c models.Candidate) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO candidates (id, name, party, constituency, photo_ref, symbol_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.Name, c.Party, c.Constituency, c.PhotoRef, c.SymbolRef, toMillis(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (q *Queries) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	c, err := scanCandidate(q.db.QueryRowContext(ctx, `
		SELECT `+candidateColumns+` FROM candidates WHERE id = $1
	`, id))
	if err != nil {
		return models.Candidate{}, notFound(err, "candidate")
	}
	return c, nil
}

// ListCandidates returns candidates in insertion order.
// An empty constituency lists every candidate.
func (q *Queries) ListCandidates(ctx context.Context, constituency string) ([]models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`
	args := []interface{}{}
	if constituency != "" {
		query += ` WHERE constituency = $1`
		args = append(args, constituency)
	}
	query += ` ORDER BY id`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// UpdateCandidate replaces a candidate's details. The constituency can only
// change while the candidate has no votes.
func (q *Queries) UpdateCandidate(ctx context.Context, c models.Candidate) (models.Candidate, error) {
	current, err := q.GetCandidate(ctx, c.ID)
	if err != nil {
		return models.Candidate{}, err
	}

	if c.Constituency != current.Constituency {
		votes, err := count(ctx, q.db, `SELECT COUNT(*) FROM votes WHERE candidate_id = $1`, c.ID)
		if err != nil {
			return models.Candidate{}, err
		}
		if votes > 0 {
			return models.Candidate{}, ErrCandidateHasVotes
		}
	}

	_, err = q.db.ExecContext(ctx, `
		UPDATE candidates
		SET name = $1, party = $2, constituency = $3, photo_ref = $4, symbol_ref = $5
		WHERE id = $6
	`, c.Name, c.Party, c.Constituency, c.PhotoRef, c.SymbolRef, c.ID)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to update candidate: %w", err)
	}

	c.CreatedAt = current.CreatedAt
	return c, nil
}

// DeleteCandidate removes a candidate that has no votes.
func (q *Queries) DeleteCandidate(ctx context.Context, id string) error {
	votes, err := count(ctx, q.db, `SELECT COUNT(*) FROM votes WHERE candidate_id = $1`, id)
	if err != nil {
		return err
	}
	if votes > 0 {
		return ErrCandidateHasVotes
	}

	res, err := q.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("candidate: %w", ErrNotFound)
	}
	return nil
}

func (q *Queries) CountCandidates(ctx context.Context) (int, error) {
	return count(ctx, q.db, `SELECT COUNT(*) FROM candidates`)
}
