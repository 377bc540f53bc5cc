// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credentials, codes, and token utilities.

# Passwords

Passwords are hashed with bcrypt before they are stored anywhere,
including pending registrations:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password) // ErrInvalidCredentials on mismatch

# Session Tokens

An Issuer signs HS256 JWTs carrying the subject (voter or admin ID),
the role, and for voters the constituency:

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)
	token, expiresAt, err := issuer.Issue(voter.ID, models.RoleVoter, voter.Constituency)
	claims, err := issuer.Parse(token) // ErrInvalidToken when bad or expired

# One-Time Codes

Email verification codes are 6 random decimal digits from crypto/rand:

	code, err := auth.GenerateOTP()

# ID Generation

Record IDs are UUIDv7 strings, so ordering by ID is creation order:

	id, err := auth.NewID()

Pending registrations are keyed by a random UUIDv4 (NewRegistrationToken).

# IP Hashing

Audit records store a keyed hash instead of the raw address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
