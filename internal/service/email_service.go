package service

import (
	"context"
	"log"
	"time"

	"turbo/internal/models"
	"turbo/internal/settings"
	"turbo/pkg/mailer"
)

// EmailService sends email through the Resend credentials held in the
// singleton configuration row.
type EmailService struct {
	store   *settings.Store
	baseURL string // overridden in tests to point at a stub server
}

func NewEmailService(store *settings.Store) *EmailService {
	return &EmailService{store: store}
}

// NewEmailServiceWithBaseURL points the provider client at a custom API
// endpoint (stub servers in tests).
func NewEmailServiceWithBaseURL(store *settings.Store, baseURL string) *EmailService {
	return &EmailService{store: store, baseURL: baseURL}
}

// Config returns the Resend configuration, or nil when email has never
// been configured or is switched off.
func (s *EmailService) Config() *models.ResendConfig {
	cfg, err := s.store.LoadResend()
	if err != nil {
		log.Printf("[email] load config: %v", err)
		return nil
	}
	if !cfg.Configured() {
		return nil
	}
	return cfg
}

// Send delivers one HTML email. Provider-level failures (bad key, quota,
// invalid recipient, timeout) come back as (false, reason); only a nil
// service is a programmer error.
func (s *EmailService) Send(to, subject, html string) (bool, string) {
	cfg := s.Config()
	if cfg == nil {
		return false, "email service is not configured"
	}
	if cfg.FromEmail == "" {
		return false, "from email is not configured"
	}
	return s.send(cfg, to, subject, html)
}

// SendTest sends a test email with the saved credentials (active or not)
// and stamps the outcome on the configuration row.
func (s *EmailService) SendTest(to string) (bool, string) {
	cfg, err := s.store.LoadResend()
	if err != nil {
		return false, "could not load email configuration"
	}
	if cfg.APIKey == "" {
		return false, "api key is not configured"
	}
	if cfg.FromEmail == "" {
		return false, "from email is not configured"
	}
	ok, msg := s.send(cfg, to, "Test Email - Turbo Configuration",
		"<h1>Test Email Successful!</h1><p>Your email configuration is working correctly.</p>")

	stamped := *cfg
	if ok {
		now := time.Now()
		stamped.LastTestStatus = "success"
		stamped.LastTestAt = &now
	} else {
		stamped.LastTestStatus = "failed"
	}
	if err := s.store.SaveResend(&stamped); err != nil {
		log.Printf("[email] stamp test result: %v", err)
	}
	return ok, msg
}

func (s *EmailService) send(cfg *models.ResendConfig, to, subject, html string) (bool, string) {
	client := mailer.NewClient(s.baseURL, cfg.APIKey)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Send(ctx, cfg.Sender(), to, subject, html); err != nil {
		log.Printf("[email] send to %s failed: %v", to, err)
		return false, err.Error()
	}
	return true, "sent"
}
