package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

const newsColumns = `id, title, slug, author_id, news_type, short_description, content,
	featured_image_id, is_featured, event_date, event_location, published_at, views, created_at, updated_at`

type NewsRepository struct {
	db DBTX
}

func NewNewsRepository(db DBTX) *NewsRepository {
	return &NewsRepository{db: db}
}

// NewsFilter narrows ListNews results. Zero values mean no filter.
type NewsFilter struct {
	NewsType     string
	CategorySlug string
	FeaturedOnly bool
	Search       string
	Limit        int
	Offset       int
}

// CreateNews inserts a new news event.
func (r *NewsRepository) CreateNews(ctx context.Context, news *models.NewsEvent) error {
	if news.ID == "" {
		news.ID = uuid.New().String()
	}

	query := `
		INSERT INTO news_events (id, title, slug, author_id, news_type, short_description, content,
			featured_image_id, is_featured, event_date, event_location, published_at, views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		news.ID,
		news.Title,
		news.Slug,
		news.AuthorID,
		news.NewsType,
		news.ShortDescription,
		news.Content,
		news.FeaturedImageID,
		news.IsFeatured,
		news.EventDate,
		news.EventLocation,
		news.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create news event: %w", err)
	}

	return nil
}

// GetNewsBySlug retrieves a news event by slug. Returns (nil, nil) when absent.
func (r *NewsRepository) GetNewsBySlug(ctx context.Context, slug string) (*models.NewsEvent, error) {
	query := "SELECT " + newsColumns + " FROM news_events WHERE slug = ?"

	news, err := scanNews(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news event: %w", err)
	}

	return news, nil
}

// SlugExists reports whether a news event already uses the slug.
func (r *NewsRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news_events WHERE slug = ?", slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check news slug: %w", err)
	}
	return count > 0, nil
}

// ListNews retrieves news events matching the filter, newest first, along
// with the total count.
func (r *NewsRepository) ListNews(ctx context.Context, filter NewsFilter) ([]*models.NewsEvent, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.NewsType != "" {
		where += " AND n.news_type = ?"
		args = append(args, filter.NewsType)
	}
	if filter.CategorySlug != "" {
		where += ` AND n.id IN (
			SELECT nec.news_event_id FROM news_event_categories nec
			JOIN news_categories c ON c.id = nec.category_id
			WHERE c.slug = ?)`
		args = append(args, filter.CategorySlug)
	}
	if filter.FeaturedOnly {
		where += " AND n.is_featured = 1"
	}
	if filter.Search != "" {
		where += " AND (n.title LIKE ? OR n.short_description LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM news_events n" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count news events: %w", err)
	}

	query := `SELECT n.id, n.title, n.slug, n.author_id, n.news_type, n.short_description, n.content,
		n.featured_image_id, n.is_featured, n.event_date, n.event_location, n.published_at, n.views, n.created_at, n.updated_at
		FROM news_events n` + where + " ORDER BY n.published_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list news events: %w", err)
	}
	defer rows.Close()

	var items []*models.NewsEvent
	for rows.Next() {
		news, err := scanNews(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan news event: %w", err)
		}
		items = append(items, news)
	}

	return items, total, nil
}

// UpdateNews updates a news event's mutable fields.
func (r *NewsRepository) UpdateNews(ctx context.Context, news *models.NewsEvent) error {
	query := `
		UPDATE news_events
		SET title = ?, author_id = ?, news_type = ?, short_description = ?, content = ?,
			is_featured = ?, event_date = ?, event_location = ?, published_at = ?, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		news.Title,
		news.AuthorID,
		news.NewsType,
		news.ShortDescription,
		news.Content,
		news.IsFeatured,
		news.EventDate,
		news.EventLocation,
		news.PublishedAt,
		news.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update news event: %w", err)
	}

	return nil
}

// SetFeaturedImage updates the news event's featured image pointer. A nil
// imageID clears it.
func (r *NewsRepository) SetFeaturedImage(ctx context.Context, id string, imageID *string) error {
	query := "UPDATE news_events SET featured_image_id = ?, updated_at = NOW() WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, imageID, id)
	if err != nil {
		return fmt.Errorf("failed to set news featured image: %w", err)
	}

	return nil
}

// FeaturedImageID returns the news event's current featured image pointer.
// The second return value reports whether the news event exists.
func (r *NewsRepository) FeaturedImageID(ctx context.Context, id string) (*string, bool, error) {
	var imageID sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT featured_image_id FROM news_events WHERE id = ?", id).Scan(&imageID)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get news featured image: %w", err)
	}

	if imageID.Valid {
		return &imageID.String, true, nil
	}
	return nil, true, nil
}

// IncrementViews bumps the view counter by one.
func (r *NewsRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE news_events SET views = views + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment news views: %w", err)
	}
	return nil
}

// SetCategories replaces the news event's category links.
func (r *NewsRepository) SetCategories(ctx context.Context, newsID string, categoryIDs []string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM news_event_categories WHERE news_event_id = ?", newsID); err != nil {
		return fmt.Errorf("failed to clear news categories: %w", err)
	}

	for _, categoryID := range categoryIDs {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO news_event_categories (news_event_id, category_id) VALUES (?, ?)",
			newsID, categoryID)
		if err != nil {
			return fmt.Errorf("failed to link news category: %w", err)
		}
	}

	return nil
}

// GetCategories retrieves the categories linked to a news event.
func (r *NewsRepository) GetCategories(ctx context.Context, newsID string) ([]models.NewsCategory, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.created_at, c.updated_at
		FROM news_categories c
		JOIN news_event_categories nec ON nec.category_id = c.id
		WHERE nec.news_event_id = ?
		ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query, newsID)
	if err != nil {
		return nil, fmt.Errorf("failed to get news categories: %w", err)
	}
	defer rows.Close()

	var categories []models.NewsCategory
	for rows.Next() {
		var category models.NewsCategory
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

// DeleteNews deletes a news event record.
func (r *NewsRepository) DeleteNews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM news_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete news event: %w", err)
	}
	return nil
}

func scanNews(row rowScanner) (*models.NewsEvent, error) {
	var news models.NewsEvent
	var authorID, featuredImageID sql.NullString
	var eventDate sql.NullTime

	err := row.Scan(
		&news.ID,
		&news.Title,
		&news.Slug,
		&authorID,
		&news.NewsType,
		&news.ShortDescription,
		&news.Content,
		&featuredImageID,
		&news.IsFeatured,
		&eventDate,
		&news.EventLocation,
		&news.PublishedAt,
		&news.Views,
		&news.CreatedAt,
		&news.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		news.AuthorID = &authorID.String
	}
	if featuredImageID.Valid {
		news.FeaturedImageID = &featuredImageID.String
	}
	if eventDate.Valid {
		news.EventDate = &eventDate.Time
	}

	return &news, nil
}
