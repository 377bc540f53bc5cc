// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/votesecure/audit"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/notify"
	"github.com/danielhkuo/votesecure/store"
)

// ErrElectionNotCompleted is returned by Renotify for elections still open or upcoming
var ErrElectionNotCompleted = errors.New("election is not completed")

// Notifier announces the winner of a completed election
type Notifier interface {
	NotifyWinner(ctx context.Context, electionID string) notify.Outcome
}

// Completion is one election moved to completed by a Synchronize call
type Completion struct {
	ElectionID string
	Outcome    notify.Outcome
}

// SyncReport summarizes what one Synchronize call changed
type SyncReport struct {
	Activated int64
	Completed []Completion
}

type Engine struct {
	db       *sql.DB
	notifier Notifier
	audit    *audit.Recorder

	// Now is used by Run and for notification timestamps
	Now func() time.Time
}

func NewEngine(db *sql.DB, notifier Notifier, recorder *audit.Recorder) *Engine {
	return &Engine{
		db:       db,
		notifier: notifier,
		audit:    recorder,
		Now:      time.Now,
	}
}

// Synchronize brings persisted statuses in line with now.
// Upcoming elections whose window contains now become active; elections
// whose window ended become completed. Each completion is claimed by exactly
// one caller, and only that caller notifies, after the commit.
func (e *Engine) Synchronize(ctx context.Context, now time.Time) (SyncReport, error) {
	var report SyncReport
	var claimed []string

	err := store.InTx(ctx, e.db, func(q *store.Queries) error {
		activated, err := q.ActivateElections(ctx, now)
		if err != nil {
			return err
		}
		report.Activated = activated

		due, err := q.ElectionsDueForCompletion(ctx, now)
		if err != nil {
			return err
		}

		for _, id := range due {
			ok, err := q.CompleteElection(ctx, id)
			if err != nil {
				return err
			}
			if ok {
				claimed = append(claimed, id)
			}
		}
		return nil
	})
	if err != nil {
		return SyncReport{}, fmt.Errorf("failed to synchronize elections: %w", err)
	}

	if report.Activated > 0 {
		slog.Info("Elections activated", "count", report.Activated)
	}

	for _, id := range claimed {
		slog.Info("Election completed", "election_id", id)
		report.Completed = append(report.Completed, Completion{
			ElectionID: id,
			Outcome:    e.announce(ctx, id),
		})
	}

	return report, nil
}

// Renotify sends the winner announcement of a completed election again
func (e *Engine) Renotify(ctx context.Context, electionID string) (notify.Outcome, error) {
	election, err := store.New(e.db).GetElection(ctx, electionID)
	if err != nil {
		return notify.Outcome{}, err
	}
	if election.Status != models.StatusCompleted {
		return notify.Outcome{}, ErrElectionNotCompleted
	}

	return e.announce(ctx, electionID), nil
}

// Run synchronizes immediately and then on every tick until ctx is done
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := e.Synchronize(ctx, e.Now()); err != nil && ctx.Err() == nil {
			slog.Error("Background synchronize failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (e *Engine) announce(ctx context.Context, electionID string) notify.Outcome {
	out := e.notifier.NotifyWinner(ctx, electionID)

	if out.Status == models.NotifySent {
		slog.Info("Winner announced",
			"election_id", electionID,
			"recipients", out.Recipients,
			"sent", out.Sent)
	} else {
		slog.Warn("Winner announcement not delivered",
			"election_id", electionID,
			"status", out.Status,
			"error", out.Err)
	}

	now := e.Now()
	if err := store.New(e.db).SetNotifyStatus(ctx, electionID, out.Status, now); err != nil {
		slog.Error("Failed to record notification status", "election_id", electionID, "error", err)
	}

	e.audit.Record(ctx, models.AuditEntry{
		Action:     models.ActionWinnerNotified,
		ActorType:  audit.ActorSystem,
		ActorID:    "lifecycle",
		ElectionID: audit.Ref(electionID),
		Details:    fmt.Sprintf("status=%s recipients=%d sent=%d", out.Status, out.Recipients, out.Sent),
		CreatedAt:  now,
	})

	return out
}
