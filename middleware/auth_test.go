// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/votesecure/auth"
	"github.com/danielhkuo/votesecure/models"
)

func TestRequireRole(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	voterToken, _, err := issuer.Issue("voter-1", models.RoleVoter, "Guntur")
	if err != nil {
		t.Fatal(err)
	}
	adminToken, _, err := issuer.Issue("admin-1", models.RoleAdmin, "")
	if err != nil {
		t.Fatal(err)
	}

	var seen *auth.Claims
	handler := RequireVoter(issuer, func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"voter token", "Bearer " + voterToken, http.StatusOK},
		{"lowercase scheme", "bearer " + voterToken, http.StatusOK},
		{"admin token on voter route", "Bearer " + adminToken, http.StatusForbidden},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + voterToken, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest("GET", "/voters/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if tc.expectedStatus == http.StatusOK {
				if seen == nil || seen.Subject != "voter-1" || seen.Constituency != "Guntur" {
					t.Errorf("Expected voter claims in context, got %+v", seen)
				}
			} else if seen != nil {
				t.Error("Handler should not run for rejected requests")
			}
		})
	}
}

func TestClaimsFrom_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := ClaimsFrom(req.Context()); ok {
		t.Error("Expected no claims on a bare request")
	}
}
