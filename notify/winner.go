// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/results"
	"github.com/danielhkuo/votesecure/store"
)

// DefaultParallelism bounds concurrent sends per announcement
const DefaultParallelism = 4

// Outcome describes one winner announcement attempt.
// Status is one of the models.Notify* codes.
type Outcome struct {
	Status     string
	Recipients int
	Sent       int
	Err        error
}

// WinnerNotifier announces election results to the voters of the
// election's constituency.
type WinnerNotifier struct {
	db          *sql.DB
	sender      Sender
	Parallelism int
}

func NewWinnerNotifier(db *sql.DB, sender Sender) *WinnerNotifier {
	return &WinnerNotifier{
		db:          db,
		sender:      sender,
		Parallelism: DefaultParallelism,
	}
}

// NotifyWinner tallies the election and emails every verified voter of its
// constituency. The announcement counts as sent if at least one email went out.
func (n *WinnerNotifier) NotifyWinner(ctx context.Context, electionID string) Outcome {
	res, err := results.Tally(ctx, n.db, electionID)
	if errors.Is(err, store.ErrNotFound) {
		return Outcome{Status: models.NotifyElectionNotFound, Err: err}
	}
	if err != nil {
		return Outcome{Status: models.NotifySendFailed, Err: err}
	}
	if len(res.Candidates) == 0 {
		return Outcome{Status: models.NotifyNoResults}
	}

	emails, err := store.New(n.db).VoterEmails(ctx, res.Election.Constituency)
	if err != nil {
		return Outcome{Status: models.NotifySendFailed, Err: err}
	}
	if len(emails) == 0 {
		return Outcome{Status: models.NotifyNoRecipients}
	}

	out := Outcome{Recipients: len(emails)}

	var (
		mu      sync.Mutex
		lastErr error
	)

	var g errgroup.Group
	if n.Parallelism > 0 {
		g.SetLimit(n.Parallelism)
	}
	for _, email := range emails {
		g.Go(func() error {
			msg, err := WinnerMessage(email, res)
			if err == nil {
				err = n.sender.Send(ctx, msg)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("Failed to send winner email", "election_id", electionID, "error", err)
				lastErr = err
				return nil
			}
			out.Sent++
			return nil
		})
	}
	g.Wait()

	if out.Sent == 0 {
		out.Status = models.NotifySendFailed
		out.Err = lastErr
		return out
	}

	out.Status = models.NotifySent
	return out
}
