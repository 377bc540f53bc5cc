// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/votesecure/notify"
)

// ErrSendFailed is returned by a failing RecordingSender
var ErrSendFailed = errors.New("send failed")

// Clock is a settable time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// RecordingSender keeps every message it is asked to send.
// With Fail set, it records nothing and returns ErrSendFailed.
type RecordingSender struct {
	mu       sync.Mutex
	messages []notify.Message
	Fail     bool
}

func (s *RecordingSender) Send(ctx context.Context, m notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrSendFailed
	}
	s.messages = append(s.messages, m)
	return nil
}

func (s *RecordingSender) SetFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fail = fail
}

func (s *RecordingSender) Messages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Message(nil), s.messages...)
}

// Last returns the most recent message, or false if none was sent
func (s *RecordingSender) Last() (notify.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return notify.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}
