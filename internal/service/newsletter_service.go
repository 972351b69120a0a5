package service

import (
	"context"
	"strings"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type NewsletterService struct {
	subscribers *repository.NewsletterRepository
	validate    *validation.Validator
	log         *logger.Logger
}

func NewNewsletterService(subscribers *repository.NewsletterRepository, validate *validation.Validator, log *logger.Logger) *NewsletterService {
	return &NewsletterService{subscribers: subscribers, validate: validate, log: log}
}

// Subscribe adds an email to the newsletter list. An inactive subscriber is
// reactivated; an active one is a conflict. The second return value reports
// whether an old subscription was reactivated.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.validate.IsEmail(email) {
		return nil, false, errs.Validation("email", "invalid email address")
	}

	existing, err := s.subscribers.GetSubscriberByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if existing.IsActive {
			return nil, false, errs.Conflict("email '%s' is already subscribed", email)
		}
		if err := s.subscribers.Reactivate(ctx, existing.ID); err != nil {
			return nil, false, err
		}
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		s.log.Infof("reactivated newsletter subscription for %s", email)
		return existing, true, nil
	}

	subscriber := &models.NewsletterSubscriber{Email: email, IsActive: true}
	if err := s.subscribers.CreateSubscriber(ctx, subscriber); err != nil {
		return nil, false, err
	}
	s.log.Infof("created newsletter subscription for %s", email)
	return subscriber, false, nil
}

// Unsubscribe deactivates an active subscription; the record is kept.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.validate.IsEmail(email) {
		return errs.Validation("email", "invalid email address")
	}

	subscriber, err := s.subscribers.GetSubscriberByEmail(ctx, email)
	if err != nil {
		return err
	}
	if subscriber == nil || !subscriber.IsActive {
		return errs.NotFound("active subscription", email)
	}

	if err := s.subscribers.Deactivate(ctx, subscriber.ID); err != nil {
		return err
	}
	s.log.Infof("deactivated newsletter subscription for %s", email)
	return nil
}

// ListSubscribers retrieves subscribers for administrators.
func (s *NewsletterService) ListSubscribers(ctx context.Context, activeOnly bool, page, perPage int) ([]*models.NewsletterSubscriber, int, int, int, error) {
	page, perPage, offset := normalizePage(page, perPage)
	subscribers, total, err := s.subscribers.ListSubscribers(ctx, activeOnly, perPage, offset)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if len(subscribers) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		subscribers, total, err = s.subscribers.ListSubscribers(ctx, activeOnly, perPage, (page-1)*perPage)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return subscribers, total, page, perPage, nil
}
