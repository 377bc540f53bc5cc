// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votesecure/ballot"
	"github.com/danielhkuo/votesecure/lifecycle"
	"github.com/danielhkuo/votesecure/middleware"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/store"
)

// Reason codes for registration and admin failures
const (
	ReasonValidation          = "validation_failed"
	ReasonDuplicateEmail      = "duplicate_email"
	ReasonNoPending           = "no_pending_registration"
	ReasonCodeExpired         = "code_expired"
	ReasonCodeMismatch        = "code_mismatch"
	ReasonCodeNotSent         = "code_not_sent"
	ReasonNotCompleted        = "election_not_completed"
	ReasonCandidateHasVotes   = "candidate_has_votes"
	ReasonUnknownConstituency = "unknown_constituency"
)

// writeError maps a service error to its HTTP response.
// what names the resource for 404 messages.
func writeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		middleware.ReasonResponse(w, http.StatusBadRequest, err.Error(), ReasonValidation)
	case errors.Is(err, lifecycle.ErrInvalidWindow):
		middleware.ReasonResponse(w, http.StatusBadRequest, err.Error(), ReasonValidation)
	case errors.Is(err, registration.ErrUnknownConstituency):
		middleware.ReasonResponse(w, http.StatusBadRequest, "Unknown constituency", ReasonUnknownConstituency)

	case errors.Is(err, registration.ErrDuplicateEmail):
		middleware.ReasonResponse(w, http.StatusConflict, "Email is already registered", ReasonDuplicateEmail)
	case errors.Is(err, registration.ErrNoPendingRegistration):
		middleware.ReasonResponse(w, http.StatusNotFound, "No pending registration; register again", ReasonNoPending)
	case errors.Is(err, registration.ErrCodeExpired):
		middleware.ReasonResponse(w, http.StatusGone, "Verification code expired; register again", ReasonCodeExpired)
	case errors.Is(err, registration.ErrCodeMismatch):
		middleware.ReasonResponse(w, http.StatusBadRequest, "Verification code does not match", ReasonCodeMismatch)
	case errors.Is(err, registration.ErrCodeNotSent):
		slog.Error("Failed to send verification code", "error", err)
		middleware.ReasonResponse(w, http.StatusBadGateway, "Could not send verification code", ReasonCodeNotSent)

	case errors.Is(err, ballot.ErrVoterNotFound):
		middleware.ReasonResponse(w, http.StatusNotFound, "Voter not found", ballot.ReasonVoterNotFound)
	case ballot.Reason(err) != "":
		middleware.ReasonResponse(w, http.StatusConflict, voteRejection(err), ballot.Reason(err))

	case errors.Is(err, lifecycle.ErrElectionNotCompleted):
		middleware.ReasonResponse(w, http.StatusConflict, "Election is not completed", ReasonNotCompleted)
	case errors.Is(err, store.ErrCandidateHasVotes):
		middleware.ReasonResponse(w, http.StatusConflict, "Candidate has recorded votes", ReasonCandidateHasVotes)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, what+" not found")

	default:
		slog.Error("request failed", "resource", what, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func voteRejection(err error) string {
	switch {
	case errors.Is(err, ballot.ErrElectionNotActive):
		return "Election is not active"
	case errors.Is(err, ballot.ErrAlreadyVoted):
		return "You have already voted in this election"
	case errors.Is(err, ballot.ErrWrongConstituency):
		return "This election is not in your constituency"
	default:
		return "Invalid candidate for this election"
	}
}
