package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"turbo/config"
	"turbo/internal/database"
	"turbo/internal/domain"
	"turbo/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	cfg := config.Load()
	database.SeedAdmin(db, &cfg.Admin)
	return Setup(cfg, db), db, cfg
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, r *gin.Engine, cfg *config.Config) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/login", "", gin.H{
		"email":    cfg.Admin.Email,
		"password": cfg.Admin.Password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "user@example.com",
		"username": "user1",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	w = doJSON(t, r, http.MethodGet, "/api/v1/me/profile", reg.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/me/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Duplicate email conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "user@example.com",
		"username": "user2",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminGate(t *testing.T) {
	r, _, cfg := newTestRouter(t)

	// Anonymous.
	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/settings/stripe", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Regular user.
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "pleb@example.com",
		"username": "pleb",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/settings/stripe", reg.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin login rejects non-admin accounts.
	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/login", "", gin.H{
		"email":    "pleb@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Seeded admin passes.
	token := adminToken(t, r, cfg)
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/settings/stripe", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSettingsPutThenGet(t *testing.T) {
	r, db, cfg := newTestRouter(t)
	token := adminToken(t, r, cfg)

	w := doJSON(t, r, http.MethodPut, "/api/v1/admin/settings/stripe", token, gin.H{
		"is_active":       true,
		"publishable_key": "pk_test_abc",
		"secret_key":      "sk_test_abc",
		"webhook_secret":  "whsec_abc",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/settings/stripe", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Config models.StripeConfig `json:"config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pk_test_abc", resp.Config.PublishableKey)
	assert.True(t, resp.Config.IsActive)

	// A second save stays on the same row.
	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/settings/stripe", token, gin.H{
		"is_active":       true,
		"publishable_key": "pk_test_def",
		"secret_key":      "sk_test_def",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	require.NoError(t, db.Model(&models.StripeConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The public payment config now reflects the save.
	w = doJSON(t, r, http.MethodGet, "/api/v1/payments/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pk_test_def")
	assert.NotContains(t, w.Body.String(), "sk_test_def")
}

func TestPaymentConfigUnavailableWhenUnconfigured(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/payments/config", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEditorSetup(t *testing.T) {
	r, _, cfg := newTestRouter(t)
	token := adminToken(t, r, cfg)

	w := doJSON(t, r, http.MethodGet, "/api/v1/admin/settings/editor/setup", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/admin/settings/editor", token, gin.H{
		"is_active": true,
		"api_key":   "tiny_key",
		"height":    480,
		"plugins":   "link lists code",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/settings/editor/setup", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cdn.tiny.cloud/1/tiny_key")
}

func TestPublicBlogShowsOnlyPublished(t *testing.T) {
	r, db, _ := newTestRouter(t)

	require.NoError(t, db.Create(&models.Post{Title: "Live Post", Status: domain.PostStatusPublished}).Error)
	require.NoError(t, db.Create(&models.Post{Title: "Secret Draft", Status: domain.PostStatusDraft}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/v1/blog/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Live Post")
	assert.NotContains(t, w.Body.String(), "Secret Draft")

	w = doJSON(t, r, http.MethodGet, "/api/v1/blog/posts/live-post", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/blog/posts/secret-draft", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminPostLifecycle(t *testing.T) {
	r, _, cfg := newTestRouter(t)
	token := adminToken(t, r, cfg)

	w := doJSON(t, r, http.MethodPost, "/api/v1/admin/categories", token, gin.H{"name": "News"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/admin/posts", token, gin.H{
		"title":   "First Post",
		"content": "<p>body</p>",
		"status":  "draft",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Post models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "first-post", created.Post.Slug)

	// Invisible publicly while a draft.
	w = doJSON(t, r, http.MethodGet, "/api/v1/blog/posts/first-post", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Publish and it appears.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/admin/posts/%d", created.Post.ID), token, gin.H{
		"title":   "First Post",
		"content": "<p>body</p>",
		"status":  "published",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodGet, "/api/v1/blog/posts/first-post", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewsletterSubscribeFlow(t *testing.T) {
	r, db, cfg := newTestRouter(t)

	// Email is unconfigured; the signup still lands as pending.
	w := doJSON(t, r, http.MethodPost, "/api/v1/newsletter/subscribe", "", gin.H{
		"email": "reader@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sub models.NewsletterSubscriber
	require.NoError(t, db.Where("email = ?", "reader@example.com").First(&sub).Error)
	assert.Equal(t, domain.SubscriberStatusPending, sub.Status)

	w = doJSON(t, r, http.MethodGet, "/api/v1/newsletter/confirm?token="+sub.ConfirmationToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.SubscriberStatusActive)

	w = doJSON(t, r, http.MethodGet, "/api/v1/newsletter/confirm?token=bogus", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	token := adminToken(t, r, cfg)
	w = doJSON(t, r, http.MethodGet, "/api/v1/admin/subscribers", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reader@example.com")
}

func TestWebhookRejectsUnsignedPayloads(t *testing.T) {
	r, _, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/webhooks/stripe", "", gin.H{"id": "evt_1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
