// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/store"
)

// Actor types
const (
	ActorVoter  = "voter"
	ActorAdmin  = "admin"
	ActorSystem = "system"
)

// DefaultLimit is the number of entries List returns when asked for none
const DefaultLimit = 100

// Recorder writes the audit trail. Writes are best-effort: a failure is
// logged and never surfaces to the operation being audited.
// A nil *Recorder records nothing.
type Recorder struct {
	db   store.DBTX
	salt string
}

// NewRecorder returns a recorder that stores client IPs as keyed hashes using salt
func NewRecorder(db store.DBTX, salt string) *Recorder {
	return &Recorder{db: db, salt: salt}
}

func (r *Recorder) Record(ctx context.Context, e models.AuditEntry) {
	if r == nil {
		return
	}

	id, err := auth.NewID()
	if err != nil {
		slog.Warn("Failed to generate audit ID", "action", e.Action, "error", err)
		return
	}
	e.ID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.IPAddress = auth.HashIP(e.IPAddress, r.salt)

	if err := store.New(r.db).InsertAudit(ctx, e); err != nil {
		slog.Warn("Failed to write audit entry",
			"action", e.Action,
			"actor_id", e.ActorID,
			"error", err)
	}
}

// List returns the latest entries, newest first
func (r *Recorder) List(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = DefaultLimit
	}
	return store.New(r.db).ListAudit(ctx, limit)
}

// Ref returns a pointer to id, or nil when id is empty
func Ref(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
