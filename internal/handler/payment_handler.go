package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"turbo/internal/middleware"
	"turbo/internal/repository"
	"turbo/internal/service"
	"turbo/pkg/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc      *service.PaymentService
	userRepo *repository.UserRepository
}

func NewPaymentHandler(svc *service.PaymentService, userRepo *repository.UserRepository) *PaymentHandler {
	return &PaymentHandler{svc: svc, userRepo: userRepo}
}

// GetConfig returns the publishable half of the payment configuration, the
// only part a browser may see. 503 while payments are unconfigured.
func (h *PaymentHandler) GetConfig(c *gin.Context) {
	cfg := h.svc.PublicConfig()
	if cfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments are not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

type CreateIntentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=50"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Description string `json:"description"`
}

// CreateIntent opens a payment intent for the authenticated user and
// returns the client secret for frontend confirmation.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	resp, err := h.svc.CreateIntent(c.Request.Context(), payment.PaymentRequest{
		UserID:         userID,
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
		Description:    req.Description,
		IdempotencyKey: fmt.Sprintf("intent_%d_%d", userID, time.Now().UnixNano()),
		CustomerEmail:  u.Email,
		Metadata:       map[string]string{"user_id": fmt.Sprintf("%d", userID)},
	})
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "payments are not configured"})
			return
		}
		log.Printf("[payment] create intent failed: user=%d err=%v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference":     resp.Reference,
		"status":        resp.Status,
		"client_secret": resp.ClientSecret,
	})
}
