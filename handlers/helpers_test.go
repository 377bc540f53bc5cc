// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/middleware"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/testutil"
)

// testEnv wires the handlers against a fresh database, a fake clock and a recording sender
type testEnv struct {
	db      *sql.DB
	cfg     cliparse.Config
	clock   *testutil.Clock
	sender  *testutil.RecordingSender
	pending *registration.MemoryStore
	svc     *Services

	voters *VoterHandler
	admin  *AdminHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	clock := testutil.NewClock(time.Now().UTC().Truncate(time.Millisecond))
	sender := &testutil.RecordingSender{}
	pending := registration.NewMemoryStore()
	pending.Now = clock.Now

	svc := NewServices(db, cfg, pending, sender)
	svc.Now = clock.Now
	svc.Engine.Now = clock.Now
	svc.Ledger.Now = clock.Now
	svc.Registration.Now = clock.Now

	return &testEnv{
		db:      db,
		cfg:     cfg,
		clock:   clock,
		sender:  sender,
		pending: pending,
		svc:     svc,
		voters:  NewVoterHandler(db, cfg, svc),
		admin:   NewAdminHandler(db, cfg, svc),
	}
}

// asVoter runs h behind the voter guard with a session for voter
func (e *testEnv) asVoter(t *testing.T, voter models.Voter, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for k, v := range testutil.AuthHeader(t, e.cfg, voter.ID, models.RoleVoter, voter.Constituency) {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	middleware.RequireVoter(e.svc.Issuer, h)(w, req)
	return w
}

// asAdmin runs h behind the admin guard
func (e *testEnv) asAdmin(t *testing.T, admin models.Admin, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for k, v := range testutil.AuthHeader(t, e.cfg, admin.ID, models.RoleAdmin, "") {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	middleware.RequireAdmin(e.svc.Issuer, h)(w, req)
	return w
}

// election inserts an election positioned relative to the fake clock
func (e *testEnv) election(t *testing.T, constituency, status string, startOffset, endOffset time.Duration) models.Election {
	t.Helper()
	now := e.clock.Now()
	return testutil.CreateTestElection(t, e.db, constituency, status, now.Add(startOffset), now.Add(endOffset))
}

func (e *testEnv) pendingCode(t *testing.T, token string) string {
	t.Helper()
	p, err := e.pending.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("pending registration %s: %v", token, err)
	}
	return p.Code
}

func withID(req *http.Request, id string) *http.Request {
	req.SetPathValue("id", id)
	return req
}
