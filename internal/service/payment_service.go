package service

import (
	"context"
	"log"

	"turbo/internal/models"
	"turbo/internal/settings"
	"turbo/pkg/payment"
)

// PaymentService builds Stripe providers from the singleton configuration.
type PaymentService struct {
	store   *settings.Store
	baseURL string // overridden in tests to point at a stub server
}

func NewPaymentService(store *settings.Store) *PaymentService {
	return &PaymentService{store: store}
}

func NewPaymentServiceWithBaseURL(store *settings.Store, baseURL string) *PaymentService {
	return &PaymentService{store: store, baseURL: baseURL}
}

// Config returns the Stripe configuration, or nil when payments have never
// been configured or are switched off.
func (s *PaymentService) Config() *models.StripeConfig {
	cfg, err := s.store.LoadStripe()
	if err != nil {
		log.Printf("[payment] load config: %v", err)
		return nil
	}
	if !cfg.Configured() {
		return nil
	}
	return cfg
}

// PublicConfig is the subset safe to hand to the frontend.
type PublicConfig struct {
	PublishableKey string `json:"publishable_key"`
	IsLiveMode     bool   `json:"is_live_mode"`
}

func (s *PaymentService) PublicConfig() *PublicConfig {
	cfg := s.Config()
	if cfg == nil {
		return nil
	}
	return &PublicConfig{PublishableKey: cfg.PublishableKey, IsLiveMode: cfg.IsLiveMode}
}

// CreateIntent initiates a payment with the configured provider.
func (s *PaymentService) CreateIntent(ctx context.Context, req payment.PaymentRequest) (*payment.PaymentResponse, error) {
	cfg := s.Config()
	if cfg == nil {
		return nil, ErrNotConfigured
	}
	provider := payment.NewStripeProvider(s.baseURL, cfg.SecretKey)
	resp, err := provider.InitiatePayment(ctx, req)
	if err != nil {
		return nil, &ProviderError{Provider: "stripe", Err: err}
	}
	return resp, nil
}

// VerifyWebhook checks a Stripe-Signature header against the configured
// signing secret. An empty configured secret fails closed.
func (s *PaymentService) VerifyWebhook(payload []byte, signature string) bool {
	cfg := s.Config()
	if cfg == nil || cfg.WebhookSecret == "" {
		return false
	}
	return payment.VerifyStripeSignature(payload, signature, cfg.WebhookSecret, 0)
}
