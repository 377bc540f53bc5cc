// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     interface{}
		wantMsg string
	}{
		{"valid registration", RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "password123", Constituency: "Guntur"}, ""},
		{"missing name", RegisterRequest{Email: "asha@example.com", Password: "password123", Constituency: "Guntur"}, "name is required"},
		{"bad email", RegisterRequest{Name: "Asha", Email: "asha", Password: "password123", Constituency: "Guntur"}, "email must be a valid email address"},
		{"short password", RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "short", Constituency: "Guntur"}, "password must be at least 8 characters"},
		{"valid code", VerifyRequest{RegistrationToken: "tok", Code: "123456"}, ""},
		{"short code", VerifyRequest{RegistrationToken: "tok", Code: "123"}, "code must be exactly 6 characters"},
		{"letters in code", VerifyRequest{RegistrationToken: "tok", Code: "12a456"}, "code must be numeric"},
		{"missing candidate", CastVoteRequest{}, "candidate_id is required"},
		{"missing end time", ElectionRequest{Title: "General", Constituency: "Guntur", StartTime: start}, "end_time is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() error = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}
