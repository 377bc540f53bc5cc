// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are layered: a .env file in the working directory (if present),
then environment variables, then CLI flags. CLI flags take precedence.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: Session signing secret (required)
  - SessionTTL, OTPTTL: Session and verification code lifetimes (12h, 10m)
  - SyncInterval: Election status loop period (default: 1m, 0 disables)
  - RedisURL: Pending registration store (empty keeps them in memory)
  - SMTPHost, SMTPPort, SMTPUsername, SMTPPassword, SMTPFrom: Outgoing email
  - AdminUsername, AdminPassword: Administrator created on startup if missing

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-redis          Redis URL
	-sync-interval  Status loop period
	-jwt-secret     Session signing secret

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, JWT_SECRET, SESSION_TTL, OTP_TTL,
	SYNC_INTERVAL, REDIS_URL, SMTP_HOST, SMTP_PORT, SMTP_USERNAME,
	SMTP_PASSWORD, SMTP_FROM, ADMIN_USERNAME, ADMIN_PASSWORD

# Validation

ParseFlags returns an error (it never exits) when:

  - DATABASE_URL or JWT_SECRET is missing
  - DATABASE_TYPE is not sqlite or postgres
  - a TTL is not positive, or SYNC_INTERVAL is negative
  - SMTP_HOST is set without SMTP_FROM
*/
package cliparse
