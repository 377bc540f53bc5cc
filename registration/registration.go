// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/votesecure/audit"
	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/notify"
	"github.com/danielhkuo/votesecure/store"
)

var (
	ErrDuplicateEmail        = errors.New("email is already registered")
	ErrUnknownConstituency   = errors.New("unknown constituency")
	ErrNoPendingRegistration = errors.New("no pending registration")
	ErrCodeExpired           = errors.New("verification code has expired")
	ErrCodeMismatch          = errors.New("verification code does not match")
	ErrCodeNotSent           = errors.New("verification code could not be sent")
)

// DefaultOTPTTL is how long a verification code stays valid
const DefaultOTPTTL = 10 * time.Minute

// Pending is a registration waiting for its email code.
// PasswordHash is already bcrypt hashed.
type Pending struct {
	Token        string    `json:"token"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Constituency string    `json:"constituency"`
	Code         string    `json:"code"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// PendingStore holds pending registrations by token.
// Get returns ErrNoPendingRegistration for unknown or evicted tokens.
type PendingStore interface {
	Put(ctx context.Context, p Pending, ttl time.Duration) error
	Get(ctx context.Context, token string) (Pending, error)
	Delete(ctx context.Context, token string) error
}

type Service struct {
	db      *sql.DB
	pending PendingStore
	sender  notify.Sender
	audit   *audit.Recorder

	OTPTTL time.Duration
	Now    func() time.Time
}

func NewService(db *sql.DB, pending PendingStore, sender notify.Sender, recorder *audit.Recorder, otpTTL time.Duration) *Service {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &Service{
		db:      db,
		pending: pending,
		sender:  sender,
		audit:   recorder,
		OTPTTL:  otpTTL,
		Now:     time.Now,
	}
}

// NormalizeEmail lowercases and trims an address before lookup or storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a pending registration and emails its code.
// Nothing is written to the voters table until Verify succeeds.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (Pending, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)
	if err := models.Validate(req); err != nil {
		return Pending{}, err
	}

	q := store.New(s.db)

	known, err := q.ConstituencyExists(ctx, req.Constituency)
	if err != nil {
		return Pending{}, err
	}
	if !known {
		return Pending{}, ErrUnknownConstituency
	}

	taken, err := q.EmailExists(ctx, req.Email)
	if err != nil {
		return Pending{}, err
	}
	if taken {
		return Pending{}, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return Pending{}, err
	}

	code, err := auth.GenerateOTP()
	if err != nil {
		return Pending{}, err
	}

	p := Pending{
		Token:        auth.NewRegistrationToken(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Constituency: req.Constituency,
		Code:         code,
		ExpiresAt:    s.Now().Add(s.OTPTTL),
	}

	// Kept past expiry so a late Verify reports expired, not missing
	if err := s.pending.Put(ctx, p, 2*s.OTPTTL); err != nil {
		return Pending{}, fmt.Errorf("failed to store pending registration: %w", err)
	}

	msg := notify.VerificationMessage(p.Email, p.Name, p.Code, s.OTPTTL)
	if err := s.sender.Send(ctx, msg); err != nil {
		if delErr := s.pending.Delete(ctx, p.Token); delErr != nil {
			slog.Warn("Failed to discard pending registration", "error", delErr)
		}
		return Pending{}, fmt.Errorf("%w: %w", ErrCodeNotSent, err)
	}

	slog.Info("Registration pending", "constituency", p.Constituency)
	return p, nil
}

// Verify checks a code and, on a match, persists the voter as verified.
// An expired registration is discarded; a wrong code leaves it in place.
func (s *Service) Verify(ctx context.Context, token, code string) (models.Voter, error) {
	p, err := s.pending.Get(ctx, token)
	if err != nil {
		return models.Voter{}, err
	}

	now := s.Now()
	if now.After(p.ExpiresAt) {
		if err := s.pending.Delete(ctx, token); err != nil {
			slog.Warn("Failed to discard expired registration", "error", err)
		}
		return models.Voter{}, ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(code), []byte(p.Code)) != 1 {
		return models.Voter{}, ErrCodeMismatch
	}

	id, err := auth.NewID()
	if err != nil {
		return models.Voter{}, err
	}
	voter := models.Voter{
		ID:           id,
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Constituency: p.Constituency,
		IsVerified:   true,
		CreatedAt:    now,
	}

	err = store.New(s.db).InsertVoter(ctx, voter)
	if errors.Is(err, store.ErrDuplicate) {
		// Someone verified the same address first
		if delErr := s.pending.Delete(ctx, token); delErr != nil {
			slog.Warn("Failed to delete pending registration", "error", delErr)
		}
		return models.Voter{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.Voter{}, err
	}

	if err := s.pending.Delete(ctx, token); err != nil {
		slog.Warn("Failed to delete pending registration", "error", err)
	}

	slog.Info("Voter verified", "voter_id", voter.ID, "constituency", voter.Constituency)
	s.audit.Record(ctx, models.AuditEntry{
		Action:    models.ActionVoterVerified,
		ActorType: audit.ActorVoter,
		ActorID:   voter.ID,
		CreatedAt: now,
	})

	return voter, nil
}
