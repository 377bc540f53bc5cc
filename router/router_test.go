// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/handlers"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/registration"
	"github.com/danielhkuo/votesecure/testutil"
)

type testServer struct {
	db      *sql.DB
	cfg     cliparse.Config
	mux     *http.ServeMux
	pending *registration.MemoryStore
	sender  *testutil.RecordingSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	pending := registration.NewMemoryStore()
	sender := &testutil.RecordingSender{}
	svc := handlers.NewServices(db, cfg, pending, sender)

	return &testServer{
		db:      db,
		cfg:     cfg,
		mux:     NewRouter(db, cfg, svc),
		pending: pending,
		sender:  sender,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest("GET", "/", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var body map[string]string
	testutil.AssertJSON(t, w, &body)
	if body["name"] != "VoteSecure" {
		t.Errorf("Expected name 'VoteSecure', got %q", body["name"])
	}

	// Only the exact root path is served
	w = s.do(httptest.NewRequest("GET", "/no-such-page", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestConstituenciesEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest("GET", "/constituencies", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var list []models.Constituency
	testutil.AssertJSON(t, w, &list)
	if len(list) != len(testutil.TestConstituencies) {
		t.Errorf("Expected %d constituencies, got %d", len(testutil.TestConstituencies), len(list))
	}
}

func TestRouteExistence(t *testing.T) {
	s := newTestServer(t)

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/constituencies"},

		{"POST", "/voters/register"},
		{"POST", "/voters/verify"},
		{"POST", "/voters/login"},
		{"GET", "/voters/me"},
		{"GET", "/voters/me/dashboard"},
		{"GET", "/voters/me/history"},

		{"GET", "/elections/test-id/candidates"},
		{"POST", "/elections/test-id/votes"},
		{"GET", "/elections/test-id/results"},

		{"POST", "/admin/login"},
		{"GET", "/admin/dashboard"},
		{"GET", "/admin/elections"},
		{"POST", "/admin/elections"},
		{"GET", "/admin/elections/test-id"},
		{"PUT", "/admin/elections/test-id"},
		{"DELETE", "/admin/elections/test-id"},
		{"GET", "/admin/elections/test-id/results"},
		{"POST", "/admin/elections/test-id/notify"},
		{"GET", "/admin/candidates"},
		{"POST", "/admin/candidates"},
		{"PUT", "/admin/candidates/test-id"},
		{"DELETE", "/admin/candidates/test-id"},
		{"GET", "/admin/audit"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := s.do(httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"GET", "/elections/test-id/votes"},
		{"PATCH", "/admin/candidates/test-id"},
		{"DELETE", "/voters/me"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := s.do(httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestSessionEnforcement(t *testing.T) {
	s := newTestServer(t)
	voter := testutil.CreateTestVoter(t, s.db, "voter@example.com", "Guntur")
	admin := testutil.CreateTestAdmin(t, s.db, "root")

	voterAuth := testutil.AuthHeader(t, s.cfg, voter.ID, models.RoleVoter, voter.Constituency)
	adminAuth := testutil.AuthHeader(t, s.cfg, admin.ID, models.RoleAdmin, "")

	testCases := []struct {
		name       string
		path       string
		headers    map[string]string
		wantStatus int
	}{
		{"voter route without session", "/voters/me", nil, http.StatusUnauthorized},
		{"voter route with bad token", "/voters/me", map[string]string{"Authorization": "Bearer junk"}, http.StatusUnauthorized},
		{"voter route with voter session", "/voters/me", voterAuth, http.StatusOK},
		{"voter route with admin session", "/voters/me", adminAuth, http.StatusForbidden},
		{"admin route without session", "/admin/dashboard", nil, http.StatusUnauthorized},
		{"admin route with voter session", "/admin/dashboard", voterAuth, http.StatusForbidden},
		{"admin route with admin session", "/admin/dashboard", adminAuth, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(testutil.MakeRequest("GET", tc.path, nil, tc.headers))
			testutil.AssertStatus(t, w, tc.wantStatus)
		})
	}
}

// TestVotingOverHTTP drives registration, voting and results through the router
func TestVotingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateTestAdmin(t, s.db, "root")

	// Admin session
	w := s.do(testutil.MakeRequest("POST", "/admin/login", models.AdminLoginRequest{
		Username: "root",
		Password: testutil.TestPassword,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var adminLogin models.LoginResponse
	testutil.AssertJSON(t, w, &adminLogin)
	adminAuth := map[string]string{"Authorization": "Bearer " + adminLogin.Token}

	// Candidate and a running election
	w = s.do(testutil.MakeRequest("POST", "/admin/candidates", models.CandidateRequest{
		Name:         "Ravi",
		Party:        "Party A",
		Constituency: "Guntur",
	}, adminAuth))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var candidate models.Candidate
	testutil.AssertJSON(t, w, &candidate)

	now := time.Now()
	w = s.do(testutil.MakeRequest("POST", "/admin/elections", models.ElectionRequest{
		Title:        "Guntur Assembly",
		Constituency: "Guntur",
		StartTime:    now.Add(-time.Hour),
		EndTime:      now.Add(time.Hour),
	}, adminAuth))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var election models.Election
	testutil.AssertJSON(t, w, &election)
	if election.Status != models.StatusActive {
		t.Fatalf("Election status = %q, want active", election.Status)
	}

	// Register and verify a voter
	w = s.do(testutil.MakeRequest("POST", "/voters/register", models.RegisterRequest{
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		Password:     testutil.TestPassword,
		Constituency: "Guntur",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var reg models.RegisterResponse
	testutil.AssertJSON(t, w, &reg)

	pending, err := s.pending.Get(context.Background(), reg.RegistrationToken)
	if err != nil {
		t.Fatalf("pending registration: %v", err)
	}
	w = s.do(testutil.MakeRequest("POST", "/voters/verify", models.VerifyRequest{
		RegistrationToken: reg.RegistrationToken,
		Code:              pending.Code,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var session models.LoginResponse
	testutil.AssertJSON(t, w, &session)
	voterAuth := map[string]string{"Authorization": "Bearer " + session.Token}

	// Vote once, then again
	path := "/elections/" + election.ID + "/votes"
	w = s.do(testutil.MakeRequest("POST", path, models.CastVoteRequest{CandidateID: candidate.ID}, voterAuth))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = s.do(testutil.MakeRequest("POST", path, models.CastVoteRequest{CandidateID: candidate.ID}, voterAuth))
	testutil.AssertStatus(t, w, http.StatusConflict)
	var rejection models.ErrorResponse
	testutil.AssertJSON(t, w, &rejection)
	if rejection.Reason != "already_voted" {
		t.Errorf("Reason = %q, want already_voted", rejection.Reason)
	}

	// The admin sees the running tally
	w = s.do(testutil.MakeRequest("GET", "/admin/elections/"+election.ID+"/results", nil, adminAuth))
	testutil.AssertStatus(t, w, http.StatusOK)
	var res models.Results
	testutil.AssertJSON(t, w, &res)
	if res.TotalVotes != 1 {
		t.Errorf("TotalVotes = %d, want 1", res.TotalVotes)
	}

	// The dashboard shows the vote
	w = s.do(testutil.MakeRequest("GET", "/voters/me/dashboard", nil, voterAuth))
	testutil.AssertStatus(t, w, http.StatusOK)
	var dash models.VoterDashboard
	testutil.AssertJSON(t, w, &dash)
	if len(dash.Active) != 1 || !dash.Active[0].HasVoted {
		t.Errorf("Dashboard active = %+v", dash.Active)
	}
}
