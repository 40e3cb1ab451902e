package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the Resend API endpoint; overridable for tests.
const DefaultBaseURL = "https://api.resend.com"

// Client sends email through the Resend HTTP API.
type Client struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResp struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send delivers one HTML email. The error carries the provider's rejection
// message when one is available.
func (c *Client) Send(ctx context.Context, from, to, subject, html string) error {
	body, _ := json.Marshal(sendReq{From: from, To: []string{to}, Subject: subject, HTML: html})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	var out sendResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Message != "" {
		return fmt.Errorf("%s", out.Message)
	}
	return fmt.Errorf("resend: status %d", resp.StatusCode)
}
