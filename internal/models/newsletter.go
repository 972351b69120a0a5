package models

import "time"

// NewsletterSubscriber represents a newsletter list entry. Unsubscribing
// deactivates the record instead of deleting it so re-subscription keeps
// the same row.
type NewsletterSubscriber struct {
	ID             string     `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	IsActive       bool       `db:"is_active" json:"is_active"`
	SubscribedAt   time.Time  `db:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
}
