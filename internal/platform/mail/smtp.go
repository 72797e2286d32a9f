// Package mail provides the SMTP implementation of the mail-sending collaborator.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"time"
)

// Config holds SMTP connection settings, read from the environment.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// ConfigFromEnv builds a Config from environment variables with the
// defaults the application has always used.
func ConfigFromEnv() Config {
	cfg := Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("EMAIL_USER"),
		Password: os.Getenv("EMAIL_PASS"),
		From:     os.Getenv("FROM_EMAIL"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg
}

// SMTPSender sends HTML mail over SMTP with STARTTLS.
// It implements usecase.MailSender.
type SMTPSender struct {
	cfg Config

	// dialTimeout bounds the connection attempt so a request is never
	// stuck behind an unreachable mail server.
	dialTimeout time.Duration
}

// NewSMTPSender creates a new SMTPSender with the given configuration.
func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg, dialTimeout: 10 * time.Second}
}

// Send delivers a single HTML message. It fails fast when credentials
// are not configured; callers treat failures as non-fatal and log the
// payload instead.
func (s *SMTPSender) Send(ctx context.Context, to, subject, bodyHTML string) error {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("smtp credentials not configured")
	}

	msg := fmt.Sprintf(
		"To: %s\r\nFrom: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n",
		to, s.cfg.From, subject, bodyHTML,
	)

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	timeout := s.dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("failed to auth: %w", err)
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("failed to set MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set RCPT TO: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open DATA: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return client.Quit()
}
