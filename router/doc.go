// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the VoteSecure API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	svc := handlers.NewServices(db, cfg, pendingStore, sender)
	mux := router.NewRouter(db, cfg, svc)

# Endpoints

Public:

	GET /health
	GET /
	GET /constituencies

Voter accounts:

	POST /voters/register    - Start registration, email a code
	POST /voters/verify      - Confirm the code, create the voter
	POST /voters/login       - Start a session
	GET  /voters/me          - Own profile
	GET  /voters/me/dashboard - Elections by status, with has_voted
	GET  /voters/me/history   - Votes cast

Voting (voter session required):

	GET  /elections/{id}/candidates
	POST /elections/{id}/votes
	GET  /elections/{id}/results - Completed elections only

Administration (admin session required, except login):

	POST   /admin/login
	GET    /admin/dashboard
	GET    /admin/elections
	POST   /admin/elections
	GET    /admin/elections/{id}
	PUT    /admin/elections/{id}        - Upcoming only
	DELETE /admin/elections/{id}
	GET    /admin/elections/{id}/results
	POST   /admin/elections/{id}/notify - Resend the winner notice
	GET    /admin/candidates
	POST   /admin/candidates
	PUT    /admin/candidates/{id}
	DELETE /admin/candidates/{id}
	GET    /admin/audit

Sessions are passed as "Authorization: Bearer <token>".
*/
package router
