// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/handlers"
	"github.com/danielhkuo/votesecure/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, svc *handlers.Services) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(db)
	voterHandler := handlers.NewVoterHandler(db, cfg, svc)
	adminHandler := handlers.NewAdminHandler(db, cfg, svc)

	voter := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireVoter(svc.Issuer, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(svc.Issuer, h))
	}

	// Public
	mux.HandleFunc("GET /health", publicHandler.Health)
	mux.HandleFunc("GET /{$}", middleware.WithLogging(publicHandler.Index))
	mux.HandleFunc("GET /constituencies", middleware.WithLogging(publicHandler.Constituencies))

	// Voter accounts
	mux.HandleFunc("POST /voters/register", middleware.WithLogging(voterHandler.Register))
	mux.HandleFunc("POST /voters/verify", middleware.WithLogging(voterHandler.Verify))
	mux.HandleFunc("POST /voters/login", middleware.WithLogging(voterHandler.Login))
	mux.HandleFunc("GET /voters/me", voter(voterHandler.Me))
	mux.HandleFunc("GET /voters/me/dashboard", voter(voterHandler.Dashboard))
	mux.HandleFunc("GET /voters/me/history", voter(voterHandler.History))

	// Voting (voter session, own constituency only)
	mux.HandleFunc("GET /elections/{id}/candidates", voter(voterHandler.ElectionCandidates))
	mux.HandleFunc("POST /elections/{id}/votes", voter(voterHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/results", voter(voterHandler.Results))

	// Administration
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/dashboard", admin(adminHandler.Dashboard))
	mux.HandleFunc("GET /admin/elections", admin(adminHandler.ListElections))
	mux.HandleFunc("POST /admin/elections", admin(adminHandler.CreateElection))
	mux.HandleFunc("GET /admin/elections/{id}", admin(adminHandler.GetElection))
	mux.HandleFunc("PUT /admin/elections/{id}", admin(adminHandler.UpdateElection))
	mux.HandleFunc("DELETE /admin/elections/{id}", admin(adminHandler.DeleteElection))
	mux.HandleFunc("GET /admin/elections/{id}/results", admin(adminHandler.ElectionResults))
	mux.HandleFunc("POST /admin/elections/{id}/notify", admin(adminHandler.NotifyWinner))
	mux.HandleFunc("GET /admin/candidates", admin(adminHandler.ListCandidates))
	mux.HandleFunc("POST /admin/candidates", admin(adminHandler.CreateCandidate))
	mux.HandleFunc("PUT /admin/candidates/{id}", admin(adminHandler.UpdateCandidate))
	mux.HandleFunc("DELETE /admin/candidates/{id}", admin(adminHandler.DeleteCandidate))
	mux.HandleFunc("GET /admin/audit", admin(adminHandler.Audit))

	return mux
}
