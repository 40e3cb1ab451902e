package handler

import (
	"net/http"

	"turbo/internal/service"

	"github.com/gin-gonic/gin"
)

// NewsletterHandler serves the public subscription lifecycle.
type NewsletterHandler struct {
	svc *service.NewsletterService
}

func NewNewsletterHandler(svc *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, err := h.svc.Subscribe(req.Email, req.Name)
	if err != nil {
		if err == service.ErrAlreadySubscribed {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pending", "message": "confirmation email sent"})
}

func (h *NewsletterHandler) Confirm(c *gin.Context) {
	sub, err := h.svc.Confirm(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": sub.Status})
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	sub, err := h.svc.Unsubscribe(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": sub.Status})
}
