// Package mail sends notification email over SMTP.
package mail

import (
	"fmt"
	"net/smtp"

	"taskflowpro/internal/config"
)

// EmailService sends HTML mail through a plain-auth SMTP relay. When the
// relay is not configured every send is a silent no-op, which keeps mail
// optional in development.
type EmailService struct {
	cfg config.SMTPConfig
}

// NewEmailService returns an EmailService bound to the given SMTP settings.
func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsConfigured reports whether enough SMTP settings are present to send.
func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Send delivers a single HTML message. Unconfigured services return nil.
func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}
