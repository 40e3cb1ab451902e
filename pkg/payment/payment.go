package payment

import (
	"context"
	"time"
)

type PaymentRequest struct {
	UserID         uint
	AmountCents    int64
	Currency       string
	Description    string
	IdempotencyKey string
	CustomerEmail  string
	Metadata       map[string]string
}

type PaymentResponse struct {
	Reference    string // provider payment id
	Status       string
	ClientSecret string // for frontend confirmation flows
	ExpiresAt    time.Time
}

type Provider interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error)
	VerifyPayment(ctx context.Context, reference string) (bool, error)
}
