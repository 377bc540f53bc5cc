// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/votesecure/db"
	"github.com/danielhkuo/votesecure/models"
)

// InsertVote records a ballot. A second ballot by the same voter in the
// same election violates UNIQUE(voter_id, election_id) and returns ErrDuplicate.
func (q *Queries) InsertVote(ctx context.Context, v models.Vote) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO votes (id, voter_id, election_id, candidate_id, voted_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.VoterID, v.ElectionID, v.CandidateID, toMillis(v.VotedAt))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func (q *Queries) HasVoted(ctx context.Context, voterID, electionID string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE voter_id = $1 AND election_id = $2)
	`, voterID, electionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// VotedElections returns the set of election IDs the voter has voted in
func (q *Queries) VotedElections(ctx context.Context, voterID string) (map[string]bool, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT election_id FROM votes WHERE voter_id = $1
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	voted := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		voted[id] = true
	}
	return voted, rows.Err()
}

// VoterHistory lists the voter's ballots, most recent first
func (q *Queries) VoterHistory(ctx context.Context, voterID string) ([]models.HistoryEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT e.id, e.title, e.constituency, c.name, c.party, v.voted_at
		FROM votes v
		JOIN elections e ON e.id = v.election_id
		JOIN candidates c ON c.id = v.candidate_id
		WHERE v.voter_id = $1
		ORDER BY v.voted_at DESC, v.id DESC
	`, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := []models.HistoryEntry{}
	for rows.Next() {
		var h models.HistoryEntry
		var votedAt int64
		if err := rows.Scan(&h.ElectionID, &h.ElectionTitle, &h.Constituency, &h.CandidateName, &h.Party, &votedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		h.VotedAt = fromMillis(votedAt)
		history = append(history, h)
	}
	return history, rows.Err()
}

// TallyRows counts votes per candidate of the constituency, including
// candidates with zero votes. Rows are ordered by votes descending, then
// by candidate ID so the earliest-added candidate wins a tie.
func (q *Queries) TallyRows(ctx context.Context, electionID, constituency string) ([]models.CandidateResult, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.party, COUNT(v.id) AS vote_count
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id AND v.election_id = $1
		WHERE c.constituency = $2
		GROUP BY c.id, c.name, c.party
		ORDER BY vote_count DESC, c.id ASC
	`, electionID, constituency)
	if err != nil {
		return nil, fmt.Errorf("failed to query tally: %w", err)
	}
	defer rows.Close()

	results := []models.CandidateResult{}
	for rows.Next() {
		var r models.CandidateResult
		if err := rows.Scan(&r.CandidateID, &r.Name, &r.Party, &r.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (q *Queries) CountVotes(ctx context.Context) (int, error) {
	return count(ctx, q.db, `SELECT COUNT(*) FROM votes`)
}
