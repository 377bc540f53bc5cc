// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/votesecure/middleware"
	"github.com/danielhkuo/votesecure/store"
)

type PublicHandler struct {
	db *sql.DB
}

func NewPublicHandler(db *sql.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

// Health handles GET /health
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// Index handles GET /
func (h *PublicHandler) Index(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"name":    "VoteSecure",
		"message": "Register, verify your email, and vote in your constituency's elections",
	})
}

// Constituencies handles GET /constituencies
func (h *PublicHandler) Constituencies(w http.ResponseWriter, r *http.Request) {
	list, err := store.New(h.db).ListConstituencies(r.Context())
	if err != nil {
		writeError(w, err, "Constituencies")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}
