package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

const categoryColumns = "id, name, slug, description, created_at, updated_at"

type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CreateCategory inserts a new news category.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category *models.NewsCategory) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	query := `
		INSERT INTO news_categories (id, name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query, category.ID, category.Name, category.Slug, category.Description)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// GetCategoryBySlug retrieves a category by slug. Returns (nil, nil) when absent.
func (r *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.NewsCategory, error) {
	query := "SELECT " + categoryColumns + " FROM news_categories WHERE slug = ?"

	var category models.NewsCategory
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// NameExists reports whether a category already uses the name, optionally
// excluding one slug.
func (r *CategoryRepository) NameExists(ctx context.Context, name, excludeSlug string) (bool, error) {
	query := "SELECT COUNT(*) FROM news_categories WHERE LOWER(name) = LOWER(?)"
	args := []interface{}{name}
	if excludeSlug != "" {
		query += " AND slug != ?"
		args = append(args, excludeSlug)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}

// SlugExists reports whether a category already uses the slug.
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news_categories WHERE slug = ?", slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check category slug: %w", err)
	}
	return count > 0, nil
}

// ListCategories retrieves categories ordered by name with the total count.
func (r *CategoryRepository) ListCategories(ctx context.Context, limit, offset int) ([]*models.NewsCategory, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news_categories").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	query := "SELECT " + categoryColumns + " FROM news_categories ORDER BY name LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.NewsCategory
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
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, total, nil
}

// UpdateCategory updates a category's name and description.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *models.NewsCategory) error {
	query := `
		UPDATE news_categories
		SET name = ?, description = ?, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// DeleteCategory deletes a category record.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM news_categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// GetCategoriesBySlugs retrieves the categories matching the given slugs.
func (r *CategoryRepository) GetCategoriesBySlugs(ctx context.Context, slugs []string) ([]models.NewsCategory, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	query := "SELECT " + categoryColumns + " FROM news_categories WHERE slug IN ("
	args := make([]interface{}, 0, len(slugs))
	for i, slug := range slugs {
		if i > 0 {
			query += ", "
		}
		query += "?"
		args = append(args, slug)
	}
	query += ")"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
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
