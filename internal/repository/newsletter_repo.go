package repository

import (
	"turbo/internal/models"

	"gorm.io/gorm"
)

type NewsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

func (r *NewsletterRepository) Create(n *models.Newsletter) error {
	return r.db.Create(n).Error
}

func (r *NewsletterRepository) Update(n *models.Newsletter) error {
	return r.db.Save(n).Error
}

func (r *NewsletterRepository) Delete(id uint) error {
	return r.db.Delete(&models.Newsletter{}, id).Error
}

func (r *NewsletterRepository) GetByID(id uint) (*models.Newsletter, error) {
	var n models.Newsletter
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NewsletterRepository) List(page, limit int) ([]models.Newsletter, int64, error) {
	var total int64
	if err := r.db.Model(&models.Newsletter{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Newsletter
	err := r.db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}
