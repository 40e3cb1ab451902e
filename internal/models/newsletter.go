package models

import (
	"time"

	"gorm.io/gorm"
)

type NewsletterSubscriber struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name              string         `gorm:"size:100" json:"name"`
	Status            string         `gorm:"size:20;not null;default:'pending';index" json:"status"` // pending | active | unsubscribed
	ConfirmationToken string         `gorm:"size:100;index" json:"-"`
	ConfirmedAt       *time.Time     `json:"confirmed_at"`
	UnsubscribedAt    *time.Time     `json:"unsubscribed_at"`
	CreatedAt         time.Time      `json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (NewsletterSubscriber) TableName() string { return "newsletter_subscribers" }

type Newsletter struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Subject         string         `gorm:"size:255;not null" json:"subject"`
	Content         string         `gorm:"type:text" json:"content"`
	Status          string         `gorm:"size:20;not null;default:'draft';index" json:"status"` // draft | scheduled | sent
	ScheduledAt     *time.Time     `json:"scheduled_at"`
	SentAt          *time.Time     `json:"sent_at"`
	RecipientsCount int            `gorm:"default:0" json:"recipients_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Newsletter) TableName() string { return "newsletters" }
