package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/ahmedX999/customer-support-tickets-api/internal/core/ports"
)

// SMTPSender is a secondary adapter that delivers notification emails over
// SMTP. It implements the ports.EmailSender interface.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

var _ ports.EmailSender = (*SMTPSender)(nil)

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: auth,
		from: from,
	}
}

// Send delivers a single plain-text email.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, to, subject, body,
	)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogSender is a sender that only logs the email instead of delivering it.
// Used in development and tests when no SMTP host is configured.
type LogSender struct {
	logger *slog.Logger
}

var _ ports.EmailSender = (*LogSender)(nil)

// NewLogSender creates a new log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{
		logger: logger.With("component", "email_sender"),
	}
}

// Send logs the email to the console instead of delivering it.
func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Info("mock email sent",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
