// Copyright (c) 2025-2026 Sitekit Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends transactional notification emails over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// SMTPMailer sends mail through an SMTP relay with optional PLAIN auth.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates a mailer for the given SMTP settings.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// New returns an SMTP mailer when a host is configured, otherwise a
// no-op mailer so callers never need a nil check.
func New(cfg Config) Mailer {
	if cfg.Host == "" {
		slog.Info("smtp not configured, mail notifications disabled")
		return NoopMailer{}
	}
	return NewSMTPMailer(cfg)
}

// Send delivers a single plain-text message. The context bounds the
// whole SMTP conversation, including the dial.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return fmt.Errorf("set deadline: %w", err)
		}
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if m.cfg.User != "" {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
		auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := wc.Write(buildMessage(m.cfg.From, to, subject, body)); err != nil {
		wc.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return c.Quit()
}

// SendAsync delivers a message in the background. Failures are logged,
// never surfaced to the caller.
func SendAsync(m Mailer, to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := m.Send(ctx, to, subject, body); err != nil {
			slog.Error("failed to send notification mail", "to", to, "subject", subject, "error", err)
		}
	}()
}

// buildMessage assembles RFC 5322 headers and body.
func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + sanitizeHeader(subject) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}

// sanitizeHeader strips CR/LF to prevent header injection.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}

// NoopMailer discards all messages. Used when SMTP is not configured.
type NoopMailer struct{}

// Send implements Mailer.
func (NoopMailer) Send(_ context.Context, to, subject, _ string) error {
	slog.Debug("mail discarded (smtp disabled)", "to", to, "subject", subject)
	return nil
}

var (
	_ Mailer = (*SMTPMailer)(nil)
	_ Mailer = NoopMailer{}
)
