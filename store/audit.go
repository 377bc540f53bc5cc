// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/votesecure/models"
)

func (q *Queries) InsertAudit(ctx context.Context, e models.AuditEntry) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, action, actor_type, actor_id, election_id, candidate_id,
		                        ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, e.ID, e.Action, e.ActorType, e.ActorID, e.ElectionID, e.CandidateID,
		e.IPAddress, e.UserAgent, e.Details, toMillis(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListAudit returns the most recent audit entries, newest first
func (q *Queries) ListAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, action, actor_type, actor_id, election_id, candidate_id,
		       ip_address, user_agent, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var e models.AuditEntry
		var createdAt int64
		err := rows.Scan(&e.ID, &e.Action, &e.ActorType, &e.ActorID, &e.ElectionID, &e.CandidateID,
			&e.IPAddress, &e.UserAgent, &e.Details, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.CreatedAt = fromMillis(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
