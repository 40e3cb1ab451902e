package handler

import (
	"net/http"
	"strconv"

	"turbo/internal/domain"
	"turbo/internal/repository"

	"github.com/gin-gonic/gin"
)

// BlogHandler serves the public, read-only blog surface. Only published
// posts are visible here.
type BlogHandler struct {
	postRepo     *repository.PostRepository
	taxonomyRepo *repository.TaxonomyRepository
}

func NewBlogHandler(postRepo *repository.PostRepository, taxonomyRepo *repository.TaxonomyRepository) *BlogHandler {
	return &BlogHandler{postRepo: postRepo, taxonomyRepo: taxonomyRepo}
}

// ListPosts returns published posts, newest first, with optional
// category/tag/featured/search filters.
func (h *BlogHandler) ListPosts(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := repository.PostFilter{
		Status:       domain.PostStatusPublished,
		CategorySlug: c.Query("category"),
		TagSlug:      c.Query("tag"),
		Search:       c.Query("search"),
	}
	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid featured value"})
			return
		}
		filter.Featured = &featured
	}
	posts, total, err := h.postRepo.List(filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetPost returns a single published post by slug.
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.postRepo.GetBySlug(c.Param("slug"))
	if err != nil || post == nil || !post.IsPublished() {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *BlogHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyRepo.ListCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *BlogHandler) ListTags(c *gin.Context) {
	tags, err := h.taxonomyRepo.ListTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tags"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
