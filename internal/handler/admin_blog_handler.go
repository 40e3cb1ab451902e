package handler

import (
	"net/http"
	"strings"

	"turbo/internal/domain"
	"turbo/internal/middleware"
	"turbo/internal/models"
	"turbo/internal/repository"
	"turbo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminBlogHandler manages posts, categories and tags. Unlike the public
// blog surface it sees every status.
type AdminBlogHandler struct {
	postRepo     *repository.PostRepository
	taxonomyRepo *repository.TaxonomyRepository
	mediaSvc     *service.MediaService
}

func NewAdminBlogHandler(postRepo *repository.PostRepository, taxonomyRepo *repository.TaxonomyRepository, mediaSvc *service.MediaService) *AdminBlogHandler {
	return &AdminBlogHandler{postRepo: postRepo, taxonomyRepo: taxonomyRepo, mediaSvc: mediaSvc}
}

func (h *AdminBlogHandler) ListPosts(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.PostFilter{
		Status:       c.Query("status"),
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}
	posts, total, err := h.postRepo.List(filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": posts, "total": total, "page": page, "limit": limit})
}

func (h *AdminBlogHandler) GetPost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	post, err := h.postRepo.GetByID(id)
	if err != nil || post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

type PostRequest struct {
	Title           string `json:"title" binding:"required"`
	Slug            string `json:"slug"`
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content"`
	CategoryID      *uint  `json:"category_id"`
	Status          string `json:"status" binding:"omitempty,oneof=draft published archived"`
	IsFeatured      bool   `json:"is_featured"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	TagIDs          []uint `json:"tag_ids"`
}

func (h *AdminBlogHandler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	authorID := middleware.GetUserID(c)
	post := &models.Post{
		Title:           req.Title,
		Slug:            req.Slug,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		AuthorID:        &authorID,
		CategoryID:      req.CategoryID,
		Status:          req.Status,
		IsFeatured:      req.IsFeatured,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}
	if post.Status == "" {
		post.Status = domain.PostStatusDraft
	}
	if err := h.postRepo.Create(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	if len(req.TagIDs) > 0 {
		if err := h.attachTags(post, req.TagIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach tags"})
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *AdminBlogHandler) UpdatePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	post, err := h.postRepo.GetByID(id)
	if err != nil || post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post.Title = req.Title
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	post.Excerpt = req.Excerpt
	post.Content = req.Content
	post.CategoryID = req.CategoryID
	if req.Status != "" {
		post.Status = req.Status
	}
	post.IsFeatured = req.IsFeatured
	post.MetaTitle = req.MetaTitle
	post.MetaDescription = req.MetaDescription
	if err := h.postRepo.Update(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if req.TagIDs != nil {
		if err := h.attachTags(post, req.TagIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach tags"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *AdminBlogHandler) DeletePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.postRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UploadFeaturedImage replaces a post's featured image. The old file is
// removed from storage first.
func (h *AdminBlogHandler) UploadFeaturedImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	post, err := h.postRepo.GetByID(id)
	if err != nil || post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
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
	if post.FeaturedImageURL != "" {
		_ = h.mediaSvc.Delete(ctx, post.FeaturedImageURL)
	}
	publicID := "post_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.mediaSvc.Upload(ctx, f, domain.FolderBlogImages, publicID)
	if err != nil {
		if err == service.ErrNotConfigured {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media storage is not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	post.FeaturedImageURL = url
	if err := h.postRepo.Update(post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"featured_image_url": url})
}

func (h *AdminBlogHandler) attachTags(post *models.Post, ids []uint) error {
	tags, err := h.taxonomyRepo.GetTagsByIDs(ids)
	if err != nil {
		return err
	}
	return h.postRepo.ReplaceTags(post, tags)
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *AdminBlogHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat := &models.Category{Name: req.Name, Slug: req.Slug, Description: req.Description}
	if err := h.taxonomyRepo.CreateCategory(cat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

func (h *AdminBlogHandler) UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	cat, err := h.taxonomyRepo.GetCategoryByID(id)
	if err != nil || cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat.Name = req.Name
	if req.Slug != "" {
		cat.Slug = req.Slug
	}
	cat.Description = req.Description
	if err := h.taxonomyRepo.UpdateCategory(cat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func (h *AdminBlogHandler) DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.taxonomyRepo.DeleteCategory(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminBlogHandler) CreateTag(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag := &models.Tag{Name: req.Name}
	if err := h.taxonomyRepo.CreateTag(tag); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

func (h *AdminBlogHandler) DeleteTag(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.taxonomyRepo.DeleteTag(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
