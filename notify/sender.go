// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is one email to one recipient
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// LogSender writes messages to the log instead of delivering them.
// Used when no SMTP server is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, m Message) error {
	slog.Info("Email not delivered (no SMTP configured)",
		"to", m.To,
		"subject", m.Subject)
	// Bodies carry verification codes
	slog.Debug("Undelivered email body", "to", m.To, "body", m.Text)
	return nil
}

// SMTPSender delivers messages over SMTP with STARTTLS
type SMTPSender struct {
	host string
	from string
	opts []mail.Option
}

// NewSMTPSender validates the settings by building a client once.
// Each Send dials its own connection so concurrent sends don't share one.
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(15 * time.Second),
	}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	if _, err := mail.NewClient(host, opts...); err != nil {
		return nil, fmt.Errorf("invalid SMTP settings: %w", err)
	}

	return &SMTPSender{host: host, from: from, opts: opts}, nil
}

func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)
	if m.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	}

	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", m.To, err)
	}
	return nil
}
