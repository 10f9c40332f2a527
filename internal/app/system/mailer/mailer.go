// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email: welcome messages after
// signup and payment outcome notifications after a gateway callback.
// Sends are best-effort; callers log failures and never roll back the
// surrounding workflow because an email did not go out.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message. Both bodies should be set; clients
// that can't render HTML fall back to the text part.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. The zero-config Noop sender is used in dev and
// in tests.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// SMTPConfig carries connection settings for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends mail through a single SMTP host using PLAIN auth.
type SMTP struct {
	cfg SMTPConfig
	log *zap.Logger
}

// NewSMTP returns a ready sender. Logging is for send failures only.
func NewSMTP(cfg SMTPConfig, log *zap.Logger) *SMTP {
	return &SMTP{cfg: cfg, log: log}
}

func (s *SMTP) Send(ctx context.Context, e Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := buildMIME(s.cfg.From, e)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{e.To}, msg); err != nil {
		s.log.Warn("email send failed",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err))
		return err
	}
	return nil
}

// buildMIME assembles a multipart/alternative message with text and HTML
// parts.
func buildMIME(from string, e Email) []byte {
	const boundary = "mime-boundary-7d2a"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(e.TextBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(e.HTMLBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// Noop discards all mail. Used when SMTP is not configured.
type Noop struct{}

func (Noop) Send(context.Context, Email) error { return nil }
