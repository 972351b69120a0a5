package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

type NewsletterRepository struct {
	db DBTX
}

func NewNewsletterRepository(db DBTX) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// CreateSubscriber inserts a new active subscriber.
func (r *NewsletterRepository) CreateSubscriber(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	if subscriber.ID == "" {
		subscriber.ID = uuid.New().String()
	}

	query := `
		INSERT INTO newsletter_subscribers (id, email, is_active, subscribed_at, unsubscribed_at)
		VALUES (?, ?, 1, NOW(), NULL)
	`

	_, err := r.db.ExecContext(ctx, query, subscriber.ID, subscriber.Email)
	if err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

// GetSubscriberByEmail retrieves a subscriber by email.
// Returns (nil, nil) when absent.
func (r *NewsletterRepository) GetSubscriberByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	query := `SELECT id, email, is_active, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers WHERE email = ?`

	var subscriber models.NewsletterSubscriber
	var unsubscribedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&subscriber.ID,
		&subscriber.Email,
		&subscriber.IsActive,
		&subscriber.SubscribedAt,
		&unsubscribedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	if unsubscribedAt.Valid {
		subscriber.UnsubscribedAt = &unsubscribedAt.Time
	}

	return &subscriber, nil
}

// Reactivate marks an inactive subscriber active again with a fresh
// subscription time.
func (r *NewsletterRepository) Reactivate(ctx context.Context, id string) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = 1, unsubscribed_at = NULL, subscribed_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to reactivate subscriber: %w", err)
	}

	return nil
}

// Deactivate marks a subscriber inactive, recording the unsubscribe time.
func (r *NewsletterRepository) Deactivate(ctx context.Context, id string) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = 0, unsubscribed_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscriber: %w", err)
	}

	return nil
}

// ListSubscribers retrieves subscribers newest first along with the total
// count, optionally restricted to active ones.
func (r *NewsletterRepository) ListSubscribers(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.NewsletterSubscriber, int, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active = 1"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM newsletter_subscribers"+where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	query := `SELECT id, email, is_active, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers` + where + " ORDER BY subscribed_at DESC LIMIT ? OFFSET ?"

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []*models.NewsletterSubscriber
	for rows.Next() {
		var subscriber models.NewsletterSubscriber
		var unsubscribedAt sql.NullTime
		if err := rows.Scan(
			&subscriber.ID,
			&subscriber.Email,
			&subscriber.IsActive,
			&subscriber.SubscribedAt,
			&unsubscribedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		if unsubscribedAt.Valid {
			subscriber.UnsubscribedAt = &unsubscribedAt.Time
		}
		subscribers = append(subscribers, &subscriber)
	}

	return subscribers, total, nil
}
