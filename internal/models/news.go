package models

import "time"

// News type values.
const (
	NewsTypeNews         = "NEWS"
	NewsTypeEvent        = "EVENT"
	NewsTypeAnnouncement = "ANNOUNCEMENT"
)

// ValidNewsType reports whether t is a known news type.
func ValidNewsType(t string) bool {
	switch t {
	case NewsTypeNews, NewsTypeEvent, NewsTypeAnnouncement:
		return true
	}
	return false
}

// NewsCategory groups news items. The slug is derived from the name.
type NewsCategory struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewsEvent represents a news article, event or announcement.
// FeaturedImageID is the denormalized pointer to the current featured image.
type NewsEvent struct {
	ID               string     `db:"id" json:"id"`
	Title            string     `db:"title" json:"title"`
	Slug             string     `db:"slug" json:"slug"`
	AuthorID         *string    `db:"author_id" json:"-"`
	NewsType         string     `db:"news_type" json:"news_type"`
	ShortDescription string     `db:"short_description" json:"short_description"`
	Content          string     `db:"content" json:"content"`
	FeaturedImageID  *string    `db:"featured_image_id" json:"-"`
	IsFeatured       bool       `db:"is_featured" json:"is_featured"`
	EventDate        *time.Time `db:"event_date" json:"event_date,omitempty"`
	EventLocation    string     `db:"event_location" json:"event_location"`
	PublishedAt      time.Time  `db:"published_at" json:"published_at"`
	Views            uint64     `db:"views" json:"views"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`

	Author        *Official      `db:"-" json:"author,omitempty"`
	Categories    []NewsCategory `db:"-" json:"categories,omitempty"`
	FeaturedImage *Image         `db:"-" json:"featured_image,omitempty"`
}
