package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"turbo/config"
	"turbo/internal/domain"
	"turbo/internal/models"
	"turbo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAlreadySubscribed = errors.New("email already subscribed")
	ErrTokenNotFound     = errors.New("invalid or expired token")
	ErrAlreadySent       = errors.New("newsletter already sent")
)

type NewsletterService struct {
	cfg      *config.SiteConfig
	subRepo  *repository.SubscriberRepository
	newsRepo *repository.NewsletterRepository
	emailSvc *EmailService
}

func NewNewsletterService(cfg *config.SiteConfig, subRepo *repository.SubscriberRepository, newsRepo *repository.NewsletterRepository, emailSvc *EmailService) *NewsletterService {
	return &NewsletterService{cfg: cfg, subRepo: subRepo, newsRepo: newsRepo, emailSvc: emailSvc}
}

// Subscribe registers an email as a pending subscriber and sends the
// confirmation link. Unsubscribed addresses are re-pended with a fresh
// token; already pending addresses get the email re-sent.
func (s *NewsletterService) Subscribe(email, name string) (*models.NewsletterSubscriber, error) {
	sub, err := s.subRepo.GetByEmail(email)
	switch {
	case err == nil:
		if sub.Status == domain.SubscriberStatusActive {
			return nil, ErrAlreadySubscribed
		}
		sub.Status = domain.SubscriberStatusPending
		sub.ConfirmationToken = uuid.NewString()
		sub.UnsubscribedAt = nil
		if name != "" {
			sub.Name = name
		}
		if err := s.subRepo.Update(sub); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = &models.NewsletterSubscriber{
			Email:             email,
			Name:              name,
			Status:            domain.SubscriberStatusPending,
			ConfirmationToken: uuid.NewString(),
		}
		if err := s.subRepo.Create(sub); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	s.sendConfirmation(sub)
	return sub, nil
}

// Confirm activates a pending subscription by token.
func (s *NewsletterService) Confirm(token string) (*models.NewsletterSubscriber, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}
	sub, err := s.subRepo.GetByToken(token)
	if err != nil {
		return nil, ErrTokenNotFound
	}
	if sub.Status != domain.SubscriberStatusActive {
		now := time.Now()
		sub.Status = domain.SubscriberStatusActive
		sub.ConfirmedAt = &now
		if err := s.subRepo.Update(sub); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// Unsubscribe deactivates a subscription by token.
func (s *NewsletterService) Unsubscribe(token string) (*models.NewsletterSubscriber, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}
	sub, err := s.subRepo.GetByToken(token)
	if err != nil {
		return nil, ErrTokenNotFound
	}
	if sub.Status != domain.SubscriberStatusUnsubscribed {
		now := time.Now()
		sub.Status = domain.SubscriberStatusUnsubscribed
		sub.UnsubscribedAt = &now
		if err := s.subRepo.Update(sub); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// Send fans a newsletter out to every active subscriber. Returns the number
// of successful deliveries; failures are logged and skipped so one bad
// address cannot stall the campaign.
func (s *NewsletterService) Send(id uint) (*models.Newsletter, int, error) {
	n, err := s.newsRepo.GetByID(id)
	if err != nil {
		return nil, 0, err
	}
	if n.Status == domain.NewsletterStatusSent {
		return nil, 0, ErrAlreadySent
	}
	subs, err := s.subRepo.ListActive()
	if err != nil {
		return nil, 0, err
	}
	sent := 0
	for _, sub := range subs {
		body := n.Content + s.footer(sub.ConfirmationToken)
		ok, msg := s.emailSvc.Send(sub.Email, n.Subject, body)
		if !ok {
			log.Printf("[newsletter] send to %s failed: %s", sub.Email, msg)
			continue
		}
		sent++
	}
	now := time.Now()
	n.Status = domain.NewsletterStatusSent
	n.SentAt = &now
	n.RecipientsCount = sent
	if err := s.newsRepo.Update(n); err != nil {
		return nil, sent, err
	}
	return n, sent, nil
}

func (s *NewsletterService) sendConfirmation(sub *models.NewsletterSubscriber) {
	link := fmt.Sprintf("%s/newsletter/confirm?token=%s", s.cfg.BaseURL, sub.ConfirmationToken)
	html := fmt.Sprintf(
		"<h1>Confirm your subscription</h1><p>Click <a href=%q>here</a> to confirm your %s newsletter subscription.</p>",
		link, s.cfg.Name)
	ok, msg := s.emailSvc.Send(sub.Email, "Confirm your subscription", html)
	if !ok {
		// Subscription stays pending; the user can re-submit once email is configured.
		log.Printf("[newsletter] confirmation to %s failed: %s", sub.Email, msg)
	}
}

func (s *NewsletterService) footer(token string) string {
	return fmt.Sprintf(
		"<p style=\"font-size:12px;color:#888\"><a href=\"%s/newsletter/unsubscribe?token=%s\">Unsubscribe</a></p>",
		s.cfg.BaseURL, token)
}
