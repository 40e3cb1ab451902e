package repository

import (
	"turbo/internal/domain"
	"turbo/internal/models"

	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(p *models.Post) error {
	return r.db.Create(p).Error
}

func (r *PostRepository) Update(p *models.Post) error {
	return r.db.Save(p).Error
}

func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *PostRepository) GetByID(id uint) (*models.Post, error) {
	var p models.Post
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	var p models.Post
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("slug = ?", slug).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PostFilter narrows List queries. Zero values mean "no filter".
type PostFilter struct {
	Status       string
	CategorySlug string
	TagSlug      string
	Featured     *bool
	Search       string
}

// List returns posts matching the filter, published first.
func (r *PostRepository) List(f PostFilter, page, limit int) ([]models.Post, int64, error) {
	q := r.db.Model(&models.Post{}).Preload("Author").Preload("Category").Preload("Tags")
	if f.Status != "" {
		q = q.Where("posts.status = ?", f.Status)
	}
	if f.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", f.CategorySlug)
	}
	if f.TagSlug != "" {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", f.TagSlug)
	}
	if f.Featured != nil {
		q = q.Where("posts.is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("posts.title LIKE ? OR posts.excerpt LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.Post
	err := q.Order("posts.published_at DESC, posts.created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&posts).Error
	return posts, total, err
}

// ReplaceTags swaps the post's tag set.
func (r *PostRepository) ReplaceTags(p *models.Post, tags []models.Tag) error {
	return r.db.Model(p).Association("Tags").Replace(tags)
}

func (r *PostRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Post{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *PostRepository) CountPublished() (int64, error) {
	return r.CountByStatus(domain.PostStatusPublished)
}
