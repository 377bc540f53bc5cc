// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package audit records who did what: votes, verifications, and admin changes.
// Client IP addresses are stored as truncated HMAC hashes, never raw.
package audit
