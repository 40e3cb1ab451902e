package handler

import (
	"net/http"

	"turbo/internal/middleware"
	"turbo/internal/models"
	"turbo/internal/repository"
	"turbo/internal/service"
	"turbo/internal/settings"

	"github.com/gin-gonic/gin"
)

// SettingsHandler is the admin surface over the integration configuration
// store. Each integration has exactly one row; GET returns the stored row
// or the built-in defaults when nothing has been saved yet, and PUT always
// writes through the store so the single-row guarantee holds.
type SettingsHandler struct {
	store     *settings.Store
	emailSvc  *service.EmailService
	auditRepo *repository.AuditLogRepository
}

func NewSettingsHandler(store *settings.Store, emailSvc *service.EmailService, auditRepo *repository.AuditLogRepository) *SettingsHandler {
	return &SettingsHandler{store: store, emailSvc: emailSvc, auditRepo: auditRepo}
}

func (h *SettingsHandler) GetStripe(c *gin.Context) {
	cfg, err := h.store.LoadStripe()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *SettingsHandler) UpdateStripe(c *gin.Context) {
	var cfg models.StripeConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveStripe(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	h.auditSettings(c, "update_stripe_config")
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *SettingsHandler) GetResend(c *gin.Context) {
	cfg, err := h.store.LoadResend()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *SettingsHandler) UpdateResend(c *gin.Context) {
	var cfg models.ResendConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveResend(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	h.auditSettings(c, "update_resend_config")
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// SendTestEmail delivers a test message with the stored credentials and
// stamps the outcome on the config row.
func (h *SettingsHandler) SendTestEmail(c *gin.Context) {
	var req struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, msg := h.emailSvc.SendTest(req.To)
	h.auditSettings(c, "send_test_email")
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *SettingsHandler) GetEditor(c *gin.Context) {
	cfg, err := h.store.LoadEditor()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *SettingsHandler) UpdateEditor(c *gin.Context) {
	var cfg models.EditorConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveEditor(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	h.auditSettings(c, "update_editor_config")
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// GetEditorSetup returns the resolved editor options and CDN script URL the
// admin frontend needs to mount the editor. 503 until configured.
func (h *SettingsHandler) GetEditorSetup(c *gin.Context) {
	cfg, err := h.store.LoadEditor()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	if !cfg.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "editor is not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"script_url": cfg.ScriptURL(),
		"options":    cfg.Options(),
	})
}

func (h *SettingsHandler) GetCloudinary(c *gin.Context) {
	cfg, err := h.store.LoadCloudinary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *SettingsHandler) UpdateCloudinary(c *gin.Context) {
	var cfg models.CloudinaryConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.SaveCloudinary(&cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	h.auditSettings(c, "update_cloudinary_config")
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *SettingsHandler) auditSettings(c *gin.Context, action string) {
	if h.auditRepo == nil {
		return
	}
	userID := middleware.GetUserID(c)
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:    &userID,
		Action:    action,
		Resource:  "settings",
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
