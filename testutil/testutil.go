// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/cliparse"
	"github.com/danielhkuo/votesecure/db"
	"github.com/danielhkuo/votesecure/models"
	"github.com/danielhkuo/votesecure/store"
)

// TestConstituencies are seeded into every test database
var TestConstituencies = []string{"Guntur", "Vijayawada", "Nellore"}

// TestPassword is the plaintext password of fixture voters and admins
const TestPassword = "password123"

// SetupTestDB creates a fresh test database with the full schema.
// It uses a sqlite file under t.TempDir(), or the postgres database named
// by TEST_DATABASE_URL (whose tables are dropped first).
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	var conn *sql.DB
	var err error
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		conn, err = db.Open(db.TypePostgres, url)
		if err != nil {
			t.Fatalf("Failed to open test database: %v", err)
		}

		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS audit_logs CASCADE;
			DROP TABLE IF EXISTS votes CASCADE;
			DROP TABLE IF EXISTS elections CASCADE;
			DROP TABLE IF EXISTS candidates CASCADE;
			DROP TABLE IF EXISTS admins CASCADE;
			DROP TABLE IF EXISTS voters CASCADE;
			DROP TABLE IF EXISTS constituencies CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	} else {
		conn, err = db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to open test database: %v", err)
		}
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.SeedConstituencies(context.Background(), conn, "Test Region", TestConstituencies); err != nil {
		t.Fatalf("Failed to seed constituencies: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: "sqlite",
		DatabaseURL:  "test.db",
		JWTSecret:    "test-jwt-secret",
		SessionTTL:   time.Hour,
		OTPTTL:       10 * time.Minute,
	}
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := auth.NewID()
	if err != nil {
		t.Fatalf("Failed to generate ID: %v", err)
	}
	return id
}

// CreateTestVoter inserts a verified voter with TestPassword
func CreateTestVoter(t *testing.T, conn *sql.DB, email, constituency string) models.Voter {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatal(err)
	}

	voter := models.Voter{
		ID:           newID(t),
		Name:         "Test Voter",
		Email:        email,
		PasswordHash: hash,
		Constituency: constituency,
		IsVerified:   true,
		CreatedAt:    time.Now(),
	}
	if err := store.New(conn).InsertVoter(context.Background(), voter); err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}
	return voter
}

// CreateTestAdmin inserts an admin with TestPassword
func CreateTestAdmin(t *testing.T, conn *sql.DB, username string) models.Admin {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatal(err)
	}

	admin := models.Admin{
		ID:           newID(t),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := store.New(conn).InsertAdmin(context.Background(), admin); err != nil {
		t.Fatalf("Failed to create test admin: %v", err)
	}
	return admin
}

// CreateTestCandidate adds a candidate to a constituency and returns it
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, party, constituency string) models.Candidate {
	t.Helper()

	candidate := models.Candidate{
		ID:           newID(t),
		Name:         name,
		Party:        party,
		Constituency: constituency,
		CreatedAt:    time.Now(),
	}
	if err := store.New(conn).InsertCandidate(context.Background(), candidate); err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}
	return candidate
}

// CreateTestElection inserts an election with the given persisted status and window
func CreateTestElection(t *testing.T, conn *sql.DB, constituency, status string, start, end time.Time) models.Election {
	t.Helper()

	election := models.Election{
		ID:           newID(t),
		Title:        "Test Election",
		Description:  "A test election",
		Constituency: constituency,
		StartTime:    start.UTC().Truncate(time.Millisecond),
		EndTime:      end.UTC().Truncate(time.Millisecond),
		Status:       status,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := store.New(conn).InsertElection(context.Background(), election); err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
	return election
}

// CreateActiveElection inserts an election that is active for the next hour
func CreateActiveElection(t *testing.T, conn *sql.DB, constituency string) models.Election {
	t.Helper()
	now := time.Now()
	return CreateTestElection(t, conn, constituency, models.StatusActive, now.Add(-time.Hour), now.Add(time.Hour))
}

// CastTestVote records a vote directly, bypassing the ledger's checks
func CastTestVote(t *testing.T, conn *sql.DB, voterID, electionID, candidateID string) string {
	t.Helper()

	vote := models.Vote{
		ID:          newID(t),
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		VotedAt:     time.Now(),
	}
	if err := store.New(conn).InsertVote(context.Background(), vote); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
	return vote.ID
}

// GetElection reads an election back from the database
func GetElection(t *testing.T, conn *sql.DB, id string) models.Election {
	t.Helper()
	election, err := store.New(conn).GetElection(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to read election: %v", err)
	}
	return election
}

// AuthHeader returns an Authorization header with a fresh token for subject
func AuthHeader(t *testing.T, cfg cliparse.Config, subject, role, constituency string) map[string]string {
	t.Helper()
	token, _, err := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL).Issue(subject, role, constituency)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
