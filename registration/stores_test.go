// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/testutil"
)

func samplePending() registration.Pending {
	return registration.Pending{
		Token:        "tok-1",
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "$2a$10$hash",
		Constituency: "Guntur",
		Code:         "123456",
		ExpiresAt:    t0.Add(10 * time.Minute),
	}
}

func exerciseStore(t *testing.T, s registration.PendingStore) {
	t.Helper()
	ctx := context.Background()
	p := samplePending()

	if err := s.Put(ctx, p, 20*time.Minute); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, p.Token)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Email != p.Email || got.Code != p.Code || !got.ExpiresAt.Equal(p.ExpiresAt) {
		t.Errorf("Get() = %+v, want %+v", got, p)
	}

	if err := s.Delete(ctx, p.Token); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, p.Token); !errors.Is(err, registration.ErrNoPendingRegistration) {
		t.Errorf("Get() after Delete error = %v, want ErrNoPendingRegistration", err)
	}

	// Deleting twice is fine
	if err := s.Delete(ctx, p.Token); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, registration.NewMemoryStore())
}

func TestMemoryStore_Eviction(t *testing.T) {
	clock := testutil.NewClock(t0)
	s := registration.NewMemoryStore()
	s.Now = clock.Now
	ctx := context.Background()

	if err := s.Put(ctx, samplePending(), 20*time.Minute); err != nil {
		t.Fatal(err)
	}

	clock.Advance(19 * time.Minute)
	if _, err := s.Get(ctx, "tok-1"); err != nil {
		t.Errorf("Get() before TTL error = %v", err)
	}

	clock.Advance(2 * time.Minute)
	if _, err := s.Get(ctx, "tok-1"); !errors.Is(err, registration.ErrNoPendingRegistration) {
		t.Errorf("Get() after TTL error = %v, want ErrNoPendingRegistration", err)
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	exerciseStore(t, registration.NewRedisStore(client))
}

func TestRedisStore_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := registration.NewRedisStore(client)
	ctx := context.Background()

	if err := s.Put(ctx, samplePending(), 20*time.Minute); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("votesecure:pending:tok-1"); ttl != 20*time.Minute {
		t.Errorf("key TTL = %v, want 20m", ttl)
	}

	mr.FastForward(21 * time.Minute)
	if _, err := s.Get(ctx, "tok-1"); !errors.Is(err, registration.ErrNoPendingRegistration) {
		t.Errorf("Get() after expiry error = %v, want ErrNoPendingRegistration", err)
	}
}

func TestService_WithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	conn := testutil.SetupTestDB(t)
	sender := &testutil.RecordingSender{}
	svc := registration.NewService(conn, registration.NewRedisStore(client), sender, nil, 0)
	ctx := context.Background()

	p, err := svc.Register(ctx, validRequest())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if svc.OTPTTL != registration.DefaultOTPTTL {
		t.Errorf("OTPTTL = %v, want default", svc.OTPTTL)
	}

	voter, err := svc.Verify(ctx, p.Token, p.Code)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if voter.Email != "asha@example.com" {
		t.Errorf("voter email = %q", voter.Email)
	}
}
