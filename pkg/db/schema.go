package db

import (
	"context"
	"database/sql"
	"fmt"
)

// The unique keys on zones.name, zones.slug, news_categories.*,
// news_events.slug, newsletter_subscribers.email and users.email are the
// final backstop for the generate-then-insert identifier race; the
// generators themselves do not retry on a late-discovered conflict.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS zones (
		id CHAR(36) NOT NULL,
		name VARCHAR(100) NOT NULL,
		slug VARCHAR(100) NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_zones_name (name),
		UNIQUE KEY uq_zones_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS images (
		id CHAR(36) NOT NULL,
		title VARCHAR(200) NOT NULL DEFAULT '',
		path VARCHAR(500) NOT NULL,
		url VARCHAR(500) NOT NULL,
		alt_text VARCHAR(200) NOT NULL DEFAULT '',
		caption VARCHAR(300) NOT NULL DEFAULT '',
		image_type VARCHAR(20) NOT NULL DEFAULT 'OTHER',
		owner_kind VARCHAR(30) NULL,
		owner_id CHAR(36) NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_images_owner (owner_kind, owner_id),
		KEY idx_images_type (image_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS officials (
		id CHAR(36) NOT NULL,
		official_id VARCHAR(50) NOT NULL,
		zone_id CHAR(36) NOT NULL,
		name VARCHAR(200) NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		email VARCHAR(254) NOT NULL DEFAULT '',
		position VARCHAR(20) NOT NULL,
		official_type VARCHAR(20) NOT NULL,
		bio TEXT,
		profile_image_id CHAR(36) NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		display_order INT UNSIGNED NOT NULL DEFAULT 0,
		start_date DATE NULL,
		end_date DATE NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_officials_official_id (official_id),
		KEY idx_officials_zone (zone_id),
		CONSTRAINT fk_officials_zone FOREIGN KEY (zone_id) REFERENCES zones (id) ON DELETE CASCADE,
		CONSTRAINT fk_officials_image FOREIGN KEY (profile_image_id) REFERENCES images (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS news_categories (
		id CHAR(36) NOT NULL,
		name VARCHAR(100) NOT NULL,
		slug VARCHAR(100) NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_news_categories_name (name),
		UNIQUE KEY uq_news_categories_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS news_events (
		id CHAR(36) NOT NULL,
		title VARCHAR(200) NOT NULL,
		slug VARCHAR(200) NOT NULL,
		author_id CHAR(36) NULL,
		news_type VARCHAR(20) NOT NULL,
		short_description VARCHAR(300) NOT NULL DEFAULT '',
		content TEXT,
		featured_image_id CHAR(36) NULL,
		is_featured TINYINT(1) NOT NULL DEFAULT 0,
		event_date DATETIME NULL,
		event_location VARCHAR(200) NOT NULL DEFAULT '',
		published_at DATETIME NOT NULL,
		views INT UNSIGNED NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_news_events_slug (slug),
		KEY idx_news_events_published (published_at),
		CONSTRAINT fk_news_author FOREIGN KEY (author_id) REFERENCES officials (id) ON DELETE SET NULL,
		CONSTRAINT fk_news_image FOREIGN KEY (featured_image_id) REFERENCES images (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS news_event_categories (
		news_event_id CHAR(36) NOT NULL,
		category_id CHAR(36) NOT NULL,
		PRIMARY KEY (news_event_id, category_id),
		CONSTRAINT fk_nec_news FOREIGN KEY (news_event_id) REFERENCES news_events (id) ON DELETE CASCADE,
		CONSTRAINT fk_nec_category FOREIGN KEY (category_id) REFERENCES news_categories (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS contact_submissions (
		id CHAR(36) NOT NULL,
		name VARCHAR(200) NOT NULL,
		email VARCHAR(254) NOT NULL,
		phone VARCHAR(20) NOT NULL DEFAULT '',
		subject VARCHAR(20) NOT NULL,
		message TEXT NOT NULL,
		is_responded TINYINT(1) NOT NULL DEFAULT 0,
		response_notes TEXT,
		submitted_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_contact_email_subject (email, subject),
		KEY idx_contact_submitted (submitted_at, is_responded)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id CHAR(36) NOT NULL,
		email VARCHAR(254) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		subscribed_at DATETIME NOT NULL,
		unsubscribed_at DATETIME NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_subscribers_email (email),
		KEY idx_subscribers_active (email, is_active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) NOT NULL,
		email VARCHAR(254) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		first_name VARCHAR(150) NOT NULL,
		last_name VARCHAR(150) NOT NULL,
		is_staff TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
