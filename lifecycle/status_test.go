// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/votesecure/models"
)

func TestStatusAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"before window", now.Add(time.Minute), now.Add(time.Hour), models.StatusUpcoming},
		{"inside window", now.Add(-10 * time.Minute), now.Add(10 * time.Minute), models.StatusActive},
		{"at start", now, now.Add(time.Hour), models.StatusActive},
		{"at end", now.Add(-time.Hour), now, models.StatusActive},
		{"instant window at now", now, now, models.StatusActive},
		{"after window", now.Add(-time.Hour), now.Add(-time.Minute), models.StatusCompleted},
		{"malformed window not yet ended", now.Add(2 * time.Hour), now.Add(time.Hour), models.StatusUpcoming},
		{"malformed window ended", now.Add(time.Hour), now.Add(-time.Minute), models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusAt(now, tt.start, tt.end); got != tt.want {
				t.Errorf("StatusAt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	future := [2]time.Time{now.Add(time.Hour), now.Add(2 * time.Hour)}
	open := [2]time.Time{now.Add(-time.Hour), now.Add(time.Hour)}
	past := [2]time.Time{now.Add(-2 * time.Hour), now.Add(-time.Hour)}

	tests := []struct {
		name      string
		persisted string
		window    [2]time.Time
		want      string
	}{
		{"completed stays completed in an open window", models.StatusCompleted, open, models.StatusCompleted},
		{"completed stays completed before its window", models.StatusCompleted, future, models.StatusCompleted},
		{"active never returns to upcoming", models.StatusActive, future, models.StatusActive},
		{"active inside window", models.StatusActive, open, models.StatusActive},
		{"active past window", models.StatusActive, past, models.StatusCompleted},
		{"upcoming inside window", models.StatusUpcoming, open, models.StatusActive},
		{"upcoming past window", models.StatusUpcoming, past, models.StatusCompleted},
		{"upcoming before window", models.StatusUpcoming, future, models.StatusUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.persisted, now, tt.window[0], tt.window[1]); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusAt_Deterministic(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start, end := now.Add(-time.Minute), now.Add(time.Minute)

	first := StatusAt(now, start, end)
	for i := 0; i < 10; i++ {
		if got := StatusAt(now, start, end); got != first {
			t.Fatalf("StatusAt() changed from %q to %q with identical inputs", first, got)
		}
	}
}

func TestValidateWindow(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		end     time.Time
		wantErr bool
	}{
		{"end after start", start.Add(time.Hour), false},
		{"end equals start", start, false},
		{"end before start", start.Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("ValidateWindow() error = %v, want ErrInvalidWindow", err)
			}
		})
	}
}
