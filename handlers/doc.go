// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the VoteSecure API.

# Handler Types

Each handler is a struct with database, config and service dependencies:

  - PublicHandler: Health check, index, constituency list
  - VoterHandler: Registration, login, dashboard, voting, results
  - AdminHandler: Elections, candidates, winner notices, audit trail

The services (session issuer, status engine, vote ledger, registration,
audit recorder) are wired once and shared:

	svc := handlers.NewServices(db, cfg, pendingStore, sender)
	voters := handlers.NewVoterHandler(db, cfg, svc)

# Registration

Registration is two steps. Nothing is stored as a voter until the
emailed code is confirmed:

	POST /voters/register → Register (returns registration_token)
	POST /voters/verify   → Verify (creates the voter, returns a session)

Codes expire after cfg.OTPTTL (10 minutes by default).

# Voting

	POST /elections/{id}/votes → CastVote

Rejections return 409 with a reason code: election_not_active,
already_voted, wrong_constituency or invalid_candidate.

# Election Status

Dashboards and admin listings run the status engine before reading, so
elections open and close on time even without the background loop. An
election that completes is announced to its constituency exactly once;
admins can resend with POST /admin/elections/{id}/notify.

# Errors

Every failure is a JSON models.ErrorResponse. Domain errors are mapped
to status codes in one place (writeError).
*/
package handlers
