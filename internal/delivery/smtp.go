package delivery

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
)

// SMTPConfig configures the SMTP relay.
type SMTPConfig struct {
	Host string // e.g. "smtp.gmail.com"
	Port string // e.g. "587"
	User string
	Pass string // app password
	To   string // where contact messages land
}

// SMTP relays messages through an authenticated SMTP server.
type SMTP struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("%w: SMTP credentials missing", ErrNotConfigured)
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail}, nil
}

// Send blocks until the SMTP exchange finishes. net/smtp cannot be
// interrupted, so ctx is only checked before dialing.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.User, []string{s.cfg.To}, s.compose(msg)); err != nil {
		return failed(err)
	}
	return nil
}

func (s *SMTP) compose(msg Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + s.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.cfg.User + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
