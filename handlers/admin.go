// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/votesecure/audit"
	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/lifecycle"
	"github.com/danielhkuo/votesecure/middleware"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/results"
	"github.com/danielhkuo/votesecure/store"
)

const recentElections = 5

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	svc *Services
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, svc *Services) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, svc: svc}
}

// EnsureAdmin creates the administrator account if it does not exist yet.
// An existing account keeps its password.
func EnsureAdmin(ctx context.Context, db *sql.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	q := store.New(db)
	_, err := q.GetAdminByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	id, err := auth.NewID()
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = q.InsertAdmin(ctx, models.Admin{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Admin account created", "username", username)
	return nil
}

// actor returns the admin ID from the session
func actor(r *http.Request) string {
	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		return claims.Subject
	}
	return ""
}

func (h *AdminHandler) record(r *http.Request, action string, electionID, candidateID, details string) {
	h.svc.Audit.Record(r.Context(), models.AuditEntry{
		Action:      action,
		ActorType:   audit.ActorAdmin,
		ActorID:     actor(r),
		ElectionID:  audit.Ref(electionID),
		CandidateID: audit.Ref(candidateID),
		IPAddress:   middleware.GetClientIP(r),
		UserAgent:   r.UserAgent(),
		Details:     details,
		CreatedAt:   h.svc.Now(),
	})
}

// sync runs the status engine, logging rather than failing the request
func (h *AdminHandler) sync(r *http.Request) {
	if _, err := h.svc.Engine.Synchronize(r.Context(), h.svc.Now()); err != nil {
		slog.Error("failed to synchronize elections", "error", err)
	}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		writeError(w, err, "Admin")
		return
	}

	admin, err := store.New(h.db).GetAdminByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		writeError(w, err, "Admin")
		return
	}
	if err := auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, expiresAt, err := h.svc.Issuer.Issue(admin.ID, models.RoleAdmin, "")
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("Admin logged in", "admin_id", admin.ID)
	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.sync(r)

	ctx := r.Context()
	q := store.New(h.db)
	var dash models.AdminDashboard
	var err error

	if dash.Voters, err = q.CountVoters(ctx); err != nil {
		writeError(w, err, "Dashboard")
		return
	}
	if dash.Candidates, err = q.CountCandidates(ctx); err != nil {
		writeError(w, err, "Dashboard")
		return
	}
	if dash.Elections, err = q.CountElections(ctx, ""); err != nil {
		writeError(w, err, "Dashboard")
		return
	}
	if dash.ActiveElections, err = q.CountElections(ctx, models.StatusActive); err != nil {
		writeError(w, err, "Dashboard")
		return
	}
	if dash.Votes, err = q.CountVotes(ctx); err != nil {
		writeError(w, err, "Dashboard")
		return
	}

	elections, err := q.ListElections(ctx)
	if err != nil {
		writeError(w, err, "Dashboard")
		return
	}
	if len(elections) > recentElections {
		elections = elections[:recentElections]
	}
	dash.Recent = elections

	middleware.JSONResponse(w, http.StatusOK, dash)
}

// ListElections handles GET /admin/elections
func (h *AdminHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	h.sync(r)

	elections, err := store.New(h.db).ListElections(r.Context())
	if err != nil {
		writeError(w, err, "Elections")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, elections)
}

// GetElection handles GET /admin/elections/{id}
func (h *AdminHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	h.sync(r)

	election, err := store.New(h.db).GetElection(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Election")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, election)
}

// parseElection reads and validates an election body
func (h *AdminHandler) parseElection(w http.ResponseWriter, r *http.Request) (models.ElectionRequest, bool) {
	var req models.ElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := models.Validate(req); err != nil {
		writeError(w, err, "Election")
		return req, false
	}
	if err := lifecycle.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		writeError(w, err, "Election")
		return req, false
	}

	known, err := store.New(h.db).ConstituencyExists(r.Context(), req.Constituency)
	if err != nil {
		writeError(w, err, "Constituency")
		return req, false
	}
	if !known {
		writeError(w, registration.ErrUnknownConstituency, "Constituency")
		return req, false
	}
	return req, true
}

// CreateElection handles POST /admin/elections
func (h *AdminHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseElection(w, r)
	if !ok {
		return
	}

	id, err := auth.NewID()
	if err != nil {
		slog.Error("failed to generate election ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate ID")
		return
	}

	q := store.New(h.db)
	err = q.InsertElection(r.Context(), models.Election{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		Constituency: req.Constituency,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       models.StatusUpcoming,
		CreatedAt:    h.svc.Now(),
	})
	if err != nil {
		writeError(w, err, "Election")
		return
	}

	slog.Info("Election created",
		"election_id", id,
		"constituency", req.Constituency)
	h.record(r, models.ActionElectionCreated, id, "", req.Title)

	// A window already under way, or already over, takes effect immediately
	h.sync(r)

	election, err := q.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, err, "Election")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, election)
}

// UpdateElection handles PUT /admin/elections/{id}
func (h *AdminHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	q := store.New(h.db)

	h.sync(r)
	existing, err := q.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, err, "Election")
		return
	}
	if existing.Status != models.StatusUpcoming {
		middleware.ErrorResponse(w, http.StatusConflict, "Only upcoming elections can be edited")
		return
	}

	req, ok := h.parseElection(w, r)
	if !ok {
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Constituency = req.Constituency
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime

	if err := q.UpdateElectionDetails(r.Context(), existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Started between the check and the write
			middleware.ErrorResponse(w, http.StatusConflict, "Only upcoming elections can be edited")
			return
		}
		writeError(w, err, "Election")
		return
	}

	h.record(r, models.ActionElectionUpdated, id, "", req.Title)
	h.sync(r)

	election, err := q.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, err, "Election")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, election)
}

// DeleteElection handles DELETE /admin/elections/{id}
func (h *AdminHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.New(h.db).DeleteElection(r.Context(), id); err != nil {
		writeError(w, err, "Election")
		return
	}

	slog.Info("Election deleted", "election_id", id)
	h.record(r, models.ActionElectionDeleted, id, "", "")

	w.WriteHeader(http.StatusNoContent)
}

// ElectionResults handles GET /admin/elections/{id}/results
func (h *AdminHandler) ElectionResults(w http.ResponseWriter, r *http.Request) {
	h.sync(r)

	res, err := results.Tally(r.Context(), h.db, r.PathValue("id"))
	if err != nil {
		writeError(w, err, "Election")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, res)
}

// NotifyWinner handles POST /admin/elections/{id}/notify
func (h *AdminHandler) NotifyWinner(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.sync(r)

	outcome, err := h.svc.Engine.Renotify(r.Context(), id)
	if err != nil {
		writeError(w, err, "Election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NotifyResponse{
		ElectionID: id,
		Status:     outcome.Status,
		Recipients: outcome.Recipients,
		Sent:       outcome.Sent,
	})
}

// ListCandidates handles GET /admin/candidates?constituency=
func (h *AdminHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := store.New(h.db).ListCandidates(r.Context(), r.URL.Query().Get("constituency"))
	if err != nil {
		writeError(w, err, "Candidates")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// CreateCandidate handles POST /admin/candidates
func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseCandidate(w, r)
	if !ok {
		return
	}

	id, err := auth.NewID()
	if err != nil {
		slog.Error("failed to generate candidate ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate ID")
		return
	}
	candidate := models.Candidate{
		ID:           id,
		Name:         req.Name,
		Party:        req.Party,
		Constituency: req.Constituency,
		PhotoRef:     req.PhotoRef,
		SymbolRef:    req.SymbolRef,
		CreatedAt:    h.svc.Now().UTC().Truncate(time.Millisecond),
	}
	if err := store.New(h.db).InsertCandidate(r.Context(), candidate); err != nil {
		writeError(w, err, "Candidate")
		return
	}

	slog.Info("Candidate added",
		"candidate_id", id,
		"constituency", req.Constituency)
	h.record(r, models.ActionCandidateAdded, "", id, req.Name)

	middleware.JSONResponse(w, http.StatusCreated, candidate)
}

// parseCandidate reads and validates a candidate body
func (h *AdminHandler) parseCandidate(w http.ResponseWriter, r *http.Request) (models.CandidateRequest, bool) {
	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Party = strings.TrimSpace(req.Party)
	if err := models.Validate(req); err != nil {
		writeError(w, err, "Candidate")
		return req, false
	}

	known, err := store.New(h.db).ConstituencyExists(r.Context(), req.Constituency)
	if err != nil {
		writeError(w, err, "Constituency")
		return req, false
	}
	if !known {
		writeError(w, registration.ErrUnknownConstituency, "Constituency")
		return req, false
	}
	return req, true
}

// UpdateCandidate handles PUT /admin/candidates/{id}
func (h *AdminHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseCandidate(w, r)
	if !ok {
		return
	}

	var updated models.Candidate
	err := store.InTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		updated, err = q.UpdateCandidate(r.Context(), models.Candidate{
			ID:           r.PathValue("id"),
			Name:         req.Name,
			Party:        req.Party,
			Constituency: req.Constituency,
			PhotoRef:     req.PhotoRef,
			SymbolRef:    req.SymbolRef,
		})
		return err
	})
	if err != nil {
		writeError(w, err, "Candidate")
		return
	}

	slog.Info("Candidate updated",
		"candidate_id", updated.ID,
		"constituency", updated.Constituency)
	h.record(r, models.ActionCandidateUpdated, "", updated.ID, updated.Name)

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeleteCandidate handles DELETE /admin/candidates/{id}
func (h *AdminHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.New(h.db).DeleteCandidate(r.Context(), id); err != nil {
		writeError(w, err, "Candidate")
		return
	}

	slog.Info("Candidate deleted", "candidate_id", id)
	h.record(r, models.ActionCandidateDeleted, "", id, "")

	w.WriteHeader(http.StatusNoContent)
}

// Audit handles GET /admin/audit?limit=
func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit := audit.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.svc.Audit.List(r.Context(), limit)
	if err != nil {
		writeError(w, err, "Audit")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}
