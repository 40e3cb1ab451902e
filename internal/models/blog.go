package models

import (
	"time"

	"turbo/internal/domain"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:100" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Name)
	}
	return nil
}

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50" json:"slug"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}
	return nil
}

type Post struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"size:255;not null" json:"title"`
	Slug             string         `gorm:"uniqueIndex;size:255" json:"slug"`
	Excerpt          string         `gorm:"type:text" json:"excerpt"`
	Content          string         `gorm:"type:text" json:"content"`
	FeaturedImageURL string         `gorm:"size:512" json:"featured_image_url"`
	AuthorID         *uint          `gorm:"index" json:"author_id"`
	CategoryID       *uint          `gorm:"index" json:"category_id"`
	Status           string         `gorm:"size:20;not null;default:'draft';index" json:"status"` // draft | published | archived
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`
	PublishedAt      *time.Time     `gorm:"index" json:"published_at"`
	MetaTitle        string         `gorm:"size:70" json:"meta_title"`
	MetaDescription  string         `gorm:"size:160" json:"meta_description"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags     []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
}

func (Post) TableName() string { return "posts" }

// BeforeSave fills the slug from the title and stamps published_at the
// first time a post transitions to published.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if p.Status == domain.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	return nil
}

func (p *Post) IsPublished() bool { return p.Status == domain.PostStatusPublished }
