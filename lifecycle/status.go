// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package lifecycle

import (
	"errors"
	"time"

	"github.com/danielhkuo/votesecure/models"
)

// ErrInvalidWindow rejects elections that end before they start
var ErrInvalidWindow = errors.New("end_time must not be before start_time")

// ValidateWindow checks an election window before it is stored.
// A window with identical start and end is open for that one instant.
func ValidateWindow(start, end time.Time) error {
	if end.Before(start) {
		return ErrInvalidWindow
	}
	return nil
}

// StatusAt derives an election's status from its window alone.
// A window with end before start is upcoming until end passes, then completed.
func StatusAt(now, start, end time.Time) string {
	switch {
	case end.Before(now):
		return models.StatusCompleted
	case !now.Before(start) && !now.After(end):
		return models.StatusActive
	default:
		return models.StatusUpcoming
	}
}

// Resolve combines the persisted status with the window.
// Completed is a latch; active never moves back to upcoming.
func Resolve(persisted string, now, start, end time.Time) string {
	if persisted == models.StatusCompleted {
		return models.StatusCompleted
	}

	status := StatusAt(now, start, end)
	if persisted == models.StatusActive && status == models.StatusUpcoming {
		return models.StatusActive
	}
	return status
}

// Current resolves an election's status at now
func Current(e models.Election, now time.Time) string {
	return Resolve(e.Status, now, e.StartTime, e.EndTime)
}
