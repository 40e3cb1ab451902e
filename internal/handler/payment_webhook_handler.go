package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"turbo/internal/models"
	"turbo/internal/repository"
	"turbo/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentWebhookHandler struct {
	svc       *service.PaymentService
	auditRepo *repository.AuditLogRepository
}

func NewPaymentWebhookHandler(svc *service.PaymentService, auditRepo *repository.AuditLogRepository) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{svc: svc, auditRepo: auditRepo}
}

// Handle receives Stripe webhook events. The raw body is verified against
// the stored webhook secret before any parsing; events that arrive with no
// secret on file are rejected.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !h.svc.VerifyWebhook(body, c.GetHeader("Stripe-Signature")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}
	var event struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID string `json:"id"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if h.auditRepo != nil {
		_ = h.auditRepo.Create(&models.AuditLog{
			Action:     "stripe_webhook_" + event.Type,
			Resource:   "payment",
			ResourceID: event.Data.Object.ID,
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
