// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/votesecure/audit"
	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/lifecycle"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/store"
)

// Rejections, checked in this order
var (
	ErrElectionNotActive = errors.New("election is not active")
	ErrAlreadyVoted      = errors.New("already voted in this election")
	ErrWrongConstituency = errors.New("election is not in the voter's constituency")
	ErrInvalidCandidate  = errors.New("candidate is not standing in this election")
	ErrVoterNotFound     = errors.New("voter not found")
)

// Reason codes returned to clients
const (
	ReasonElectionNotActive = "election_not_active"
	ReasonAlreadyVoted      = "already_voted"
	ReasonWrongConstituency = "wrong_constituency"
	ReasonInvalidCandidate  = "invalid_candidate"
	ReasonVoterNotFound     = "voter_not_found"
)

// Reason maps a rejection to its stable code, or "" for other errors
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrElectionNotActive):
		return ReasonElectionNotActive
	case errors.Is(err, ErrAlreadyVoted):
		return ReasonAlreadyVoted
	case errors.Is(err, ErrWrongConstituency):
		return ReasonWrongConstituency
	case errors.Is(err, ErrInvalidCandidate):
		return ReasonInvalidCandidate
	case errors.Is(err, ErrVoterNotFound):
		return ReasonVoterNotFound
	default:
		return ""
	}
}

type CastVoteInput struct {
	VoterID     string
	ElectionID  string
	CandidateID string

	// Request metadata for the audit trail
	IPAddress string
	UserAgent string
}

// Ledger records votes, at most one per voter per election
type Ledger struct {
	db    *sql.DB
	audit *audit.Recorder

	Now func() time.Time
}

func NewLedger(db *sql.DB, recorder *audit.Recorder) *Ledger {
	return &Ledger{
		db:    db,
		audit: recorder,
		Now:   time.Now,
	}
}

// CastVote validates and records one vote in a single transaction.
// The UNIQUE (voter_id, election_id) constraint decides concurrent races;
// the loser gets ErrAlreadyVoted.
func (l *Ledger) CastVote(ctx context.Context, in CastVoteInput) (models.Vote, error) {
	now := l.Now()

	id, err := auth.NewID()
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to generate vote ID: %w", err)
	}
	vote := models.Vote{
		ID:          id,
		VoterID:     in.VoterID,
		ElectionID:  in.ElectionID,
		CandidateID: in.CandidateID,
		VotedAt:     now,
	}

	err = store.InTx(ctx, l.db, func(q *store.Queries) error {
		election, err := q.GetElection(ctx, in.ElectionID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %w", ErrElectionNotActive, err)
		}
		if err != nil {
			return err
		}
		if lifecycle.Current(election, now) != models.StatusActive {
			return ErrElectionNotActive
		}

		voted, err := q.HasVoted(ctx, in.VoterID, in.ElectionID)
		if err != nil {
			return err
		}
		if voted {
			return ErrAlreadyVoted
		}

		voter, err := q.GetVoter(ctx, in.VoterID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrVoterNotFound
		}
		if err != nil {
			return err
		}
		if voter.Constituency != election.Constituency {
			return ErrWrongConstituency
		}

		candidate, err := q.GetCandidate(ctx, in.CandidateID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCandidate
		}
		if err != nil {
			return err
		}
		if candidate.Constituency != election.Constituency {
			return ErrInvalidCandidate
		}

		return q.InsertVote(ctx, vote)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return models.Vote{}, ErrAlreadyVoted
	}
	if err != nil {
		return models.Vote{}, err
	}

	slog.Info("Vote cast",
		"vote_id", vote.ID,
		"election_id", vote.ElectionID)

	l.audit.Record(ctx, models.AuditEntry{
		Action:      models.ActionVoteCast,
		ActorType:   audit.ActorVoter,
		ActorID:     vote.VoterID,
		ElectionID:  audit.Ref(vote.ElectionID),
		CandidateID: audit.Ref(vote.CandidateID),
		IPAddress:   in.IPAddress,
		UserAgent:   in.UserAgent,
		CreatedAt:   now,
	})

	return vote, nil
}

func (l *Ledger) HasVoted(ctx context.Context, voterID, electionID string) (bool, error) {
	return store.New(l.db).HasVoted(ctx, voterID, electionID)
}
