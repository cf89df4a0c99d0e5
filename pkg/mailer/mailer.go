// Package mailer delivers rendered HTML messages over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single message. Exactly one delivery attempt is made
// per call; callers decide whether a failure matters.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Config holds SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the display sender, e.g. `"ConnectZen Store" <store@example.com>`.
	From string
}

// SMTPMailer sends mail through an SMTP relay using gomail.
type SMTPMailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

// New creates a new SMTPMailer.
func New(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("mailer: SMTP credentials not configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send delivers one message. The connection is dialed per call; the relay
// handles queueing and retries beyond this single attempt.
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: failed to send to %s: %w", to, err)
	}
	return nil
}
