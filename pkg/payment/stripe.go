package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeProvider creates and verifies PaymentIntents through the Stripe API.
type StripeProvider struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewStripeProvider(baseURL, secretKey string) *StripeProvider {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeProvider{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
	Error        *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func (p *StripeProvider) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	form.Set("currency", strings.ToLower(currency))
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.CustomerEmail != "" {
		form.Set("receipt_email", req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	apiReq.Header.Set("Authorization", "Bearer "+p.SecretKey)
	if req.IdempotencyKey != "" {
		apiReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var out stripeIntent
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("stripe: invalid response (%d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil && out.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("stripe: status %d", resp.StatusCode)
	}
	return &PaymentResponse{
		Reference:    out.ID,
		Status:       out.Status,
		ClientSecret: out.ClientSecret,
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}, nil
}

func (p *StripeProvider) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v1/payment_intents/"+url.PathEscape(reference), nil)
	if err != nil {
		return false, err
	}
	apiReq.Header.Set("Authorization", "Bearer "+p.SecretKey)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("stripe: status %d", resp.StatusCode)
	}
	var out stripeIntent
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Status == "succeeded", nil
}

// VerifyStripeSignature checks a Stripe-Signature header ("t=...,v1=...")
// against the webhook signing secret. Events older than tolerance are
// rejected to limit replay.
func VerifyStripeSignature(payload []byte, header, secret string, tolerance time.Duration) bool {
	var ts string
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sigs = append(sigs, v)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return false
	}
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	if tolerance > 0 {
		age := time.Since(time.Unix(sec, 0))
		if age > tolerance || age < -tolerance {
			return false
		}
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	for _, sig := range sigs {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return true
		}
	}
	return false
}
