package handler

import (
	"log"
	"net/http"
	"strings"

	"turbo/internal/domain"
	"turbo/internal/middleware"
	"turbo/internal/repository"
	"turbo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MeHandler struct {
	userRepo *repository.UserRepository
	mediaSvc *service.MediaService
}

func NewMeHandler(userRepo *repository.UserRepository, mediaSvc *service.MediaService) *MeHandler {
	return &MeHandler{userRepo: userRepo, mediaSvc: mediaSvc}
}

// GetProfile returns the current user.
func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateProfile updates mutable account fields.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username != "" && req.Username != u.Username {
		if existing, err := h.userRepo.GetByUsername(req.Username); err == nil && existing != nil && existing.ID != u.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		u.Username = req.Username
	}
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// UploadAvatar replaces the user's avatar. The previous media file is
// removed from storage before the new one is attached.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	if u.AvatarURL != "" {
		if err := h.mediaSvc.Delete(ctx, u.AvatarURL); err != nil {
			log.Printf("[me] old avatar cleanup failed for user=%d: %v", u.ID, err)
		}
	}
	publicID := "avatar_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.mediaSvc.Upload(ctx, f, domain.FolderAvatars, publicID)
	if err != nil {
		if err == service.ErrNotConfigured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage is not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	u.AvatarURL = url
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
