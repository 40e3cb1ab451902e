package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"turbo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptAllMailServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func rejectingMailServer(t *testing.T, message string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusCode":401,"message":"` + message + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendUnconfiguredFailsGracefully(t *testing.T) {
	store := newTestStore(t)
	svc := NewEmailService(store)

	ok, msg := svc.Send("user@example.com", "Hello", "<p>Hi</p>")
	assert.False(t, ok)
	assert.Equal(t, "email service is not configured", msg)
}

func TestSendInactiveConfigFails(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveResend(&models.ResendConfig{
		IsActive:  false,
		APIKey:    "re_test",
		FromEmail: "noreply@example.com",
	}))
	svc := NewEmailService(store)

	ok, _ := svc.Send("user@example.com", "Hello", "<p>Hi</p>")
	assert.False(t, ok)
}

func TestSendDeliversThroughProvider(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveResend(&models.ResendConfig{
		IsActive:  true,
		APIKey:    "re_test",
		FromEmail: "noreply@example.com",
		FromName:  "Turbo",
	}))
	srv := acceptAllMailServer(t)
	svc := NewEmailServiceWithBaseURL(store, srv.URL)

	ok, msg := svc.Send("user@example.com", "Hello", "<p>Hi</p>")
	assert.True(t, ok)
	assert.Equal(t, "sent", msg)
}

func TestSendSurfacesProviderError(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveResend(&models.ResendConfig{
		IsActive:  true,
		APIKey:    "re_bad",
		FromEmail: "noreply@example.com",
	}))
	srv := rejectingMailServer(t, "API key is invalid")
	svc := NewEmailServiceWithBaseURL(store, srv.URL)

	ok, msg := svc.Send("user@example.com", "Hello", "<p>Hi</p>")
	assert.False(t, ok)
	assert.Contains(t, msg, "API key is invalid")
}

func TestSendTestStampsSuccess(t *testing.T) {
	store := newTestStore(t)
	// Inactive on purpose: test sends go out with saved credentials either way.
	require.NoError(t, store.SaveResend(&models.ResendConfig{
		IsActive:  false,
		APIKey:    "re_test",
		FromEmail: "noreply@example.com",
	}))
	srv := acceptAllMailServer(t)
	svc := NewEmailServiceWithBaseURL(store, srv.URL)

	ok, _ := svc.SendTest("admin@example.com")
	assert.True(t, ok)

	cfg, err := store.LoadResend()
	require.NoError(t, err)
	assert.Equal(t, "success", cfg.LastTestStatus)
	require.NotNil(t, cfg.LastTestAt)
}

func TestSendTestStampsFailure(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveResend(&models.ResendConfig{
		IsActive:  true,
		APIKey:    "re_bad",
		FromEmail: "noreply@example.com",
	}))
	srv := rejectingMailServer(t, "API key is invalid")
	svc := NewEmailServiceWithBaseURL(store, srv.URL)

	ok, msg := svc.SendTest("admin@example.com")
	assert.False(t, ok)
	assert.Contains(t, msg, "API key is invalid")

	cfg, err := store.LoadResend()
	require.NoError(t, err)
	assert.Equal(t, "failed", cfg.LastTestStatus)
	assert.Nil(t, cfg.LastTestAt)
}

func TestSendTestWithoutKey(t *testing.T) {
	store := newTestStore(t)
	svc := NewEmailService(store)

	ok, msg := svc.SendTest("admin@example.com")
	assert.False(t, ok)
	assert.Equal(t, "api key is not configured", msg)
}
