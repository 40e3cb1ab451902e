package repository

import (
	"turbo/internal/domain"
	"turbo/internal/models"

	"gorm.io/gorm"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Create(s *models.NewsletterSubscriber) error {
	return r.db.Create(s).Error
}

func (r *SubscriberRepository) Update(s *models.NewsletterSubscriber) error {
	return r.db.Save(s).Error
}

func (r *SubscriberRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var s models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriberRepository) GetByToken(token string) (*models.NewsletterSubscriber, error) {
	var s models.NewsletterSubscriber
	if err := r.db.Where("confirmation_token = ?", token).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriberRepository) List(status string, page, limit int) ([]models.NewsletterSubscriber, int64, error) {
	q := r.db.Model(&models.NewsletterSubscriber{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.NewsletterSubscriber
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&list).Error
	return list, total, err
}

// ListActive returns every confirmed subscriber, for newsletter fan-out.
func (r *SubscriberRepository) ListActive() ([]models.NewsletterSubscriber, error) {
	var list []models.NewsletterSubscriber
	err := r.db.Where("status = ?", domain.SubscriberStatusActive).Find(&list).Error
	return list, err
}

func (r *SubscriberRepository) CountActive() (int64, error) {
	var n int64
	err := r.db.Model(&models.NewsletterSubscriber{}).
		Where("status = ?", domain.SubscriberStatusActive).Count(&n).Error
	return n, err
}
