// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, validated with Validate:

  - RegisterRequest: name, email, password, constituency
  - VerifyRequest: registration_token, code
  - LoginRequest / AdminLoginRequest: credentials
  - CastVoteRequest: candidate_id
  - ElectionRequest: title, description, constituency, start_time, end_time
  - CandidateRequest: name, party, constituency, optional image references

# Response Types

  - RegisterResponse: registration_token, expires_at
  - LoginResponse: token, expires_at
  - CastVoteResponse: vote_id, message
  - NotifyResponse: winner notification outcome
  - ErrorResponse: error, message, reason

# Domain Types

One typed record per table; rows are never passed around as maps:

  - Constituency, Voter, Admin, Candidate, Election, Vote, AuditEntry

Read models built from them:

  - Results / CandidateResult: tally with winner and percentages
  - VoterDashboard / ElectionView: elections with has_voted flags
  - HistoryEntry: one past vote of a voter
  - AdminDashboard: counts and recent elections

# Constants

Election status:

	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"

Winner notification outcome:

	NotifySent, NotifyElectionNotFound, NotifyNoResults,
	NotifyNoRecipients, NotifySendFailed

Roles:

	RoleVoter = "voter"
	RoleAdmin = "admin"

# Validation

Validate runs go-playground/validator against the struct tags and
returns an error wrapping ErrValidation:

	if err := models.Validate(&req); err != nil {
		// errors.Is(err, models.ErrValidation) == true
	}
*/
package models
