// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VoteSecure API server.

VoteSecure runs constituency elections online: voters register with an
emailed one-time code, cast one vote per election in their own
constituency, and are emailed the winner when an election ends.

# Starting the Server

The server reads a .env file, environment variables, then CLI flags:

	DATABASE_URL=votesecure.db JWT_SECRET=... go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Session signing key, also keys audit IP hashes

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL, OTP_TTL: Session and verification code lifetimes (12h, 10m)
  - SYNC_INTERVAL (-sync-interval): Election status loop period (default: 1m, 0 disables)
  - REDIS_URL (-redis): Keep pending registrations in Redis instead of memory
  - SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, SMTP_FROM: Outgoing email;
    without SMTP_HOST emails are only logged
  - ADMIN_USERNAME, ADMIN_PASSWORD: Administrator created on first start

# Architecture

  - handlers: HTTP request handlers (public, voters, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Sessions, CORS, logging, JSON helpers
  - lifecycle: Election status engine (upcoming, active, completed)
  - ballot: Vote ledger, one vote per voter per election
  - registration: Email verification with one-time codes
  - results: Tallies and winners
  - notify: Email delivery and winner announcements
  - audit: Audit trail
  - store: SQL queries
  - models: Request/response and domain types
  - auth: Passwords, sessions, codes, IDs
  - db: Connections and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
