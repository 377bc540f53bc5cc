// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/votesecure/models"
)

const electionColumns = `id, title, description, constituency, start_time, end_time,
		       status, notify_status, notified_at, created_at`

func scanElection(row interface{ Scan(...interface{}) error }) (models.Election, error) {
	var e models.Election
	var start, end, createdAt int64
	var notifiedAt sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Constituency, &start, &end,
		&e.Status, &e.NotifyStatus, &notifiedAt, &createdAt,
	)
	e.StartTime = fromMillis(start)
	e.EndTime = fromMillis(end)
	e.NotifiedAt = fromNullMillis(notifiedAt)
	e.CreatedAt = fromMillis(createdAt)
	return e, err
}

func (q *Queries) listElections(ctx context.Context, query string, args ...interface{}) ([]models.Election, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	return elections, rows.Err()
}

func (q *Queries) InsertElection(ctx context.Context, e models.Election) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO elections (id, title, description, constituency, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.Title, e.Description, e.Constituency,
		toMillis(e.StartTime), toMillis(e.EndTime), e.Status, toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}
	return nil
}

func (q *Queries) GetElection(ctx context.Context, id string) (models.Election, error) {
	e, err := scanElection(q.db.QueryRowContext(ctx, `
		SELECT `+electionColumns+` FROM elections WHERE id = $1
	`, id))
	if err != nil {
		return models.Election{}, notFound(err, "election")
	}
	return e, nil
}

// ListElections returns every election, newest first
func (q *Queries) ListElections(ctx context.Context) ([]models.Election, error) {
	return q.listElections(ctx, `
		SELECT `+electionColumns+` FROM elections
		ORDER BY created_at DESC, id DESC
	`)
}

// ListElectionsByConstituency returns a constituency's elections by start time
func (q *Queries) ListElectionsByConstituency(ctx context.Context, constituency string) ([]models.Election, error) {
	return q.listElections(ctx, `
		SELECT `+electionColumns+` FROM elections
		WHERE constituency = $1
		ORDER BY start_time, id
	`, constituency)
}

// UpdateElectionDetails rewrites the editable fields of an upcoming election.
// Returns ErrNotFound when the election is missing or no longer upcoming.
func (q *Queries) UpdateElectionDetails(ctx context.Context, e models.Election) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE elections
		SET title = $1, description = $2, constituency = $3, start_time = $4, end_time = $5
		WHERE id = $6 AND status = $7
	`, e.Title, e.Description, e.Constituency, toMillis(e.StartTime), toMillis(e.EndTime),
		e.ID, models.StatusUpcoming)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("upcoming election: %w", ErrNotFound)
	}
	return nil
}

// DeleteElection removes an election; its votes go with it (ON DELETE CASCADE)
func (q *Queries) DeleteElection(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("election: %w", ErrNotFound)
	}
	return nil
}

// ActivateElections moves upcoming elections whose window contains now to active
func (q *Queries) ActivateElections(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE elections
		SET status = $1
		WHERE status = $2 AND start_time <= $3 AND end_time >= $3
	`, models.StatusActive, models.StatusUpcoming, toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("failed to activate elections: %w", err)
	}
	return res.RowsAffected()
}

// ElectionsDueForCompletion lists elections that ended before now but are not yet completed
func (q *Queries) ElectionsDueForCompletion(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id FROM elections
		WHERE status != $1 AND end_time < $2
		ORDER BY end_time, id
	`, models.StatusCompleted, toMillis(now))
	if err != nil {
		return nil, fmt.Errorf("failed to query due elections: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan election id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CompleteElection latches an election to completed.
// It reports true only for the caller whose write moved the status.
func (q *Queries) CompleteElection(ctx context.Context, id string) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE elections
		SET status = $1
		WHERE id = $2 AND status != $1
	`, models.StatusCompleted, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete election: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to complete election: %w", err)
	}
	return n == 1, nil
}

// SetNotifyStatus records the outcome of a winner notification attempt
func (q *Queries) SetNotifyStatus(ctx context.Context, id, status string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE elections
		SET notify_status = $1, notified_at = $2
		WHERE id = $3
	`, status, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("failed to record notification status: %w", err)
	}
	return nil
}

// CountElections counts elections, optionally only those with status
func (q *Queries) CountElections(ctx context.Context, status string) (int, error) {
	if status == "" {
		return count(ctx, q.db, `SELECT COUNT(*) FROM elections`)
	}
	return count(ctx, q.db, `SELECT COUNT(*) FROM elections WHERE status = $1`, status)
}
