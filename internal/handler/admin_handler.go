package handler

import (
	"net/http"
	"strconv"

	"turbo/internal/domain"
	"turbo/internal/middleware"
	"turbo/internal/models"
	"turbo/internal/repository"
	"turbo/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	authSvc       *service.AuthService
	newsletterSvc *service.NewsletterService
	userRepo      *repository.UserRepository
	postRepo      *repository.PostRepository
	subRepo       *repository.SubscriberRepository
	newsRepo      *repository.NewsletterRepository
	auditRepo     *repository.AuditLogRepository
}

func NewAdminHandler(
	authSvc *service.AuthService,
	newsletterSvc *service.NewsletterService,
	userRepo *repository.UserRepository,
	postRepo *repository.PostRepository,
	subRepo *repository.SubscriberRepository,
	newsRepo *repository.NewsletterRepository,
	auditRepo *repository.AuditLogRepository,
) *AdminHandler {
	return &AdminHandler{
		authSvc:       authSvc,
		newsletterSvc: newsletterSvc,
		userRepo:      userRepo,
		postRepo:      postRepo,
		subRepo:       subRepo,
		newsRepo:      newsRepo,
		auditRepo:     auditRepo,
	}
}

// AdminLogin handles POST /admin/login. Same credential check as regular
// login but only ADMIN accounts get tokens back.
func (h *AdminHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, access, refresh, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !u.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Dashboard handles GET /admin/dashboard — overview stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	users, _ := h.userRepo.Count()
	published, _ := h.postRepo.CountPublished()
	drafts, _ := h.postRepo.CountByStatus(domain.PostStatusDraft)
	subscribers, _ := h.subRepo.CountActive()
	c.JSON(http.StatusOK, gin.H{
		"total_users":        users,
		"published_posts":    published,
		"draft_posts":        drafts,
		"active_subscribers": subscribers,
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userRepo.List(c.Query("search"), c.Query("role"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateUser lets an admin change a user's role.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Role string `json:"role" binding:"required,oneof=USER ADMIN"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u.Role = req.Role
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	h.audit(c, "update_user_role", "user", strconv.FormatUint(uint64(id), 10))
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	page, limit := parsePagination(c)
	subs, total, err := h.subRepo.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subscribers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subs, "total": total, "page": page, "limit": limit})
}

func (h *AdminHandler) ListNewsletters(c *gin.Context) {
	page, limit := parsePagination(c)
	items, total, err := h.newsRepo.List(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list newsletters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": page, "limit": limit})
}

type NewsletterRequest struct {
	Subject string `json:"subject" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *AdminHandler) CreateNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n := &models.Newsletter{
		Subject: req.Subject,
		Content: req.Content,
		Status:  domain.NewsletterStatusDraft,
	}
	if err := h.newsRepo.Create(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"newsletter": n})
}

func (h *AdminHandler) UpdateNewsletter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	n, err := h.newsRepo.GetByID(id)
	if err != nil || n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "newsletter not found"})
		return
	}
	if n.Status == domain.NewsletterStatusSent {
		c.JSON(http.StatusConflict, gin.H{"error": "sent newsletters cannot be edited"})
		return
	}
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n.Subject = req.Subject
	n.Content = req.Content
	if err := h.newsRepo.Update(n); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"newsletter": n})
}

func (h *AdminHandler) DeleteNewsletter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.newsRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SendNewsletter fans a draft out to all active subscribers.
func (h *AdminHandler) SendNewsletter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	n, sent, err := h.newsletterSvc.Send(id)
	if err != nil {
		if err == service.ErrAlreadySent {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		return
	}
	h.audit(c, "send_newsletter", "newsletter", strconv.FormatUint(uint64(id), 10))
	c.JSON(http.StatusOK, gin.H{"newsletter": n, "recipients": sent})
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	page, limit := parsePagination(c)
	logs, total, err := h.auditRepo.List(c.Query("action"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs, "total": total, "page": page, "limit": limit})
}

func (h *AdminHandler) audit(c *gin.Context, action, resource, resourceID string) {
	if h.auditRepo == nil {
		return
	}
	userID := middleware.GetUserID(c)
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
