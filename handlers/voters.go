// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/ballot"
	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/lifecycle"
	"github.com/danielhkuo/votesecure/middleware"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/results"
	"github.com/danielhkuo/votesecure/store"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	svc *Services
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config, svc *Services) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg, svc: svc}
}

// Register handles POST /voters/register
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pending, err := h.svc.Registration.Register(r.Context(), req)
	if err != nil {
		writeError(w, err, "Registration")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		RegistrationToken: pending.Token,
		ExpiresAt:         pending.ExpiresAt,
		Message:           fmt.Sprintf("Verification code sent to %s", pending.Email),
	})
}

// Verify handles POST /voters/verify
func (h *VoterHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		writeError(w, err, "Registration")
		return
	}

	voter, err := h.svc.Registration.Verify(r.Context(), req.RegistrationToken, req.Code)
	if err != nil {
		writeError(w, err, "Registration")
		return
	}

	h.issue(w, http.StatusCreated, voter)
}

// Login handles POST /voters/login
func (h *VoterHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	req.Email = registration.NormalizeEmail(req.Email)
	if err := models.Validate(req); err != nil {
		writeError(w, err, "Voter")
		return
	}

	voter, err := store.New(h.db).GetVoterByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeError(w, err, "Voter")
		return
	}

	if err := auth.CheckPassword(voter.PasswordHash, req.Password); err != nil || !voter.IsVerified {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	slog.Info("Voter logged in", "voter_id", voter.ID)
	h.issue(w, http.StatusOK, voter)
}

func (h *VoterHandler) issue(w http.ResponseWriter, status int, voter models.Voter) {
	token, expiresAt, err := h.svc.Issuer.Issue(voter.ID, models.RoleVoter, voter.Constituency)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.JSONResponse(w, status, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Voter:     &voter,
	})
}

// currentVoter loads the voter named by the session, writing the error response on failure
func (h *VoterHandler) currentVoter(w http.ResponseWriter, r *http.Request) (models.Voter, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return models.Voter{}, false
	}

	voter, err := store.New(h.db).GetVoter(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, err, "Voter")
		return models.Voter{}, false
	}
	return voter, true
}

// Me handles GET /voters/me
func (h *VoterHandler) Me(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.currentVoter(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, voter)
}

// Dashboard handles GET /voters/me/dashboard
func (h *VoterHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.currentVoter(w, r)
	if !ok {
		return
	}

	now := h.svc.Now()
	if _, err := h.svc.Engine.Synchronize(r.Context(), now); err != nil {
		slog.Error("failed to synchronize elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	q := store.New(h.db)
	elections, err := q.ListElectionsByConstituency(r.Context(), voter.Constituency)
	if err != nil {
		writeError(w, err, "Elections")
		return
	}
	voted, err := q.VotedElections(r.Context(), voter.ID)
	if err != nil {
		writeError(w, err, "Votes")
		return
	}

	dash := models.VoterDashboard{
		Voter:     voter,
		Active:    []models.ElectionView{},
		Upcoming:  []models.ElectionView{},
		Completed: []models.ElectionView{},
	}
	for _, e := range elections {
		e.Status = lifecycle.Current(e, now)
		view := models.ElectionView{Election: e, HasVoted: voted[e.ID]}
		switch e.Status {
		case models.StatusActive:
			dash.Active = append(dash.Active, view)
		case models.StatusUpcoming:
			dash.Upcoming = append(dash.Upcoming, view)
		default:
			dash.Completed = append(dash.Completed, view)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, dash)
}

// History handles GET /voters/me/history
func (h *VoterHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	history, err := store.New(h.db).VoterHistory(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, err, "History")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, history)
}

// ElectionCandidates handles GET /elections/{id}/candidates
func (h *VoterHandler) ElectionCandidates(w http.ResponseWriter, r *http.Request) {
	election, ok := h.ownElection(w, r)
	if !ok {
		return
	}

	candidates, err := store.New(h.db).ListCandidates(r.Context(), election.Constituency)
	if err != nil {
		writeError(w, err, "Candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// CastVote handles POST /elections/{id}/votes
func (h *VoterHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		writeError(w, err, "Vote")
		return
	}

	vote, err := h.svc.Ledger.CastVote(r.Context(), ballot.CastVoteInput{
		VoterID:     claims.Subject,
		ElectionID:  electionID,
		CandidateID: req.CandidateID,
		IPAddress:   middleware.GetClientIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		writeError(w, err, "Vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  vote.ID,
		Message: "Vote recorded",
	})
}

// Results handles GET /elections/{id}/results
func (h *VoterHandler) Results(w http.ResponseWriter, r *http.Request) {
	election, ok := h.ownElection(w, r)
	if !ok {
		return
	}

	if lifecycle.Current(election, h.svc.Now()) != models.StatusCompleted {
		middleware.ReasonResponse(w, http.StatusConflict, "Results are available once the election ends", ReasonNotCompleted)
		return
	}

	res, err := results.Tally(r.Context(), h.db, election.ID)
	if err != nil {
		writeError(w, err, "Election")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, res)
}

// ownElection loads the path election if it belongs to the caller's constituency.
// Other constituencies' elections are reported as missing.
func (h *VoterHandler) ownElection(w http.ResponseWriter, r *http.Request) (models.Election, bool) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return models.Election{}, false
	}

	election, err := store.New(h.db).GetElection(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Election")
		return models.Election{}, false
	}
	if election.Constituency != claims.Constituency {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return models.Election{}, false
	}
	return election, true
}
