// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"time"

	"github.com/danielhkuo/votesecure/audit"
	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/ballot"
	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/lifecycle"
	"github.com/danielhkuo/votesecure/notify"
	"github.com/danielhkuo/votesecure/registration"
)

// Services bundles the components the handlers call into
type Services struct {
	Issuer       *auth.Issuer
	Audit        *audit.Recorder
	Engine       *lifecycle.Engine
	Ledger       *ballot.Ledger
	Registration *registration.Service

	Now func() time.Time
}

// NewServices wires every component against one database.
// The JWT secret doubles as the key for audit IP hashes.
func NewServices(db *sql.DB, cfg cliparse.Config, pending registration.PendingStore, sender notify.Sender) *Services {
	recorder := audit.NewRecorder(db, cfg.JWTSecret)
	return &Services{
		Issuer:       auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Audit:        recorder,
		Engine:       lifecycle.NewEngine(db, notify.NewWinnerNotifier(db, sender), recorder),
		Ledger:       ballot.NewLedger(db, recorder),
		Registration: registration.NewService(db, pending, sender, recorder, cfg.OTPTTL),
		Now:          time.Now,
	}
}
