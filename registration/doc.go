// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registration turns a sign-up into a verified voter.

# Flow

	pending, err := svc.Register(ctx, req)        // emails a 6-digit code
	voter, err := svc.Verify(ctx, pending.Token, code)

Register checks the constituency and that the email is not already a voter,
hashes the password, and stores a pending record keyed by a random token.
The code expires after OTPTTL (10 minutes by default). If the email cannot
be sent, the pending record is dropped and ErrCodeNotSent is returned.

Verify outcomes:

	unknown token      ErrNoPendingRegistration
	past expiry        ErrCodeExpired, record deleted (register again)
	wrong code         ErrCodeMismatch, record kept (retry allowed)
	match              voter inserted with is_verified = true, record deleted

A voter row exists only after a successful Verify, so every persisted voter
is verified.

# Pending Stores

MemoryStore serves a single instance. RedisStore shares pending records
across instances:

	opts, _ := redis.ParseURL(cfg.RedisURL)
	pending := registration.NewRedisStore(redis.NewClient(opts))

Both keep records for twice the code lifetime so that a late attempt is
reported as expired rather than unknown.
*/
package registration
