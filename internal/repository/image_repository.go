package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

const imageColumns = "id, title, path, url, alt_text, caption, image_type, owner_kind, owner_id, created_at, updated_at"

type ImageRepository struct {
	db DBTX
}

func NewImageRepository(db DBTX) *ImageRepository {
	return &ImageRepository{db: db}
}

// ImageFilter narrows ListImages results. Zero values mean no filter.
type ImageFilter struct {
	ImageType string
	OwnerKind string
	OwnerID   string
	Limit     int
	Offset    int
}

// CreateImage inserts a new image record. A generated UUID is assigned to
// image.ID when empty.
func (r *ImageRepository) CreateImage(ctx context.Context, image *models.Image) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}

	query := `
		INSERT INTO images (id, title, path, url, alt_text, caption, image_type, owner_kind, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		image.ID,
		image.Title,
		image.Path,
		image.URL,
		image.AltText,
		image.Caption,
		image.ImageType,
		image.OwnerKind,
		image.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	return nil
}

// GetImageByID retrieves an image by ID. Returns (nil, nil) when absent.
func (r *ImageRepository) GetImageByID(ctx context.Context, id string) (*models.Image, error) {
	query := "SELECT " + imageColumns + " FROM images WHERE id = ?"

	image, err := scanImage(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	return image, nil
}

// ListImages retrieves images matching the filter, newest first, along with
// the unpaginated total.
func (r *ImageRepository) ListImages(ctx context.Context, filter ImageFilter) ([]*models.Image, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.ImageType != "" {
		where += " AND image_type = ?"
		args = append(args, filter.ImageType)
	}
	if filter.OwnerKind != "" {
		where += " AND owner_kind = ?"
		args = append(args, filter.OwnerKind)
	}
	if filter.OwnerID != "" {
		where += " AND owner_id = ?"
		args = append(args, filter.OwnerID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	query := "SELECT " + imageColumns + " FROM images" + where + " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*models.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, image)
	}

	return images, total, nil
}

// UpdateImageMeta updates the descriptive metadata of an image.
func (r *ImageRepository) UpdateImageMeta(ctx context.Context, image *models.Image) error {
	query := `
		UPDATE images
		SET title = ?, alt_text = ?, caption = ?, image_type = ?, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		image.Title,
		image.AltText,
		image.Caption,
		image.ImageType,
		image.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}

	return nil
}

// SetImageOwner points the image's owner reference at the given owner and
// records the context-appropriate image type.
func (r *ImageRepository) SetImageOwner(ctx context.Context, id string, ref models.OwnerRef, imageType string) error {
	query := `
		UPDATE images
		SET owner_kind = ?, owner_id = ?, image_type = ?, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, string(ref.Kind), ref.ID, imageType, id)
	if err != nil {
		return fmt.Errorf("failed to set image owner: %w", err)
	}

	return nil
}

// ClearImageOwner removes the image's owner reference. The record itself is
// kept; the image becomes unlinked, not deleted.
func (r *ImageRepository) ClearImageOwner(ctx context.Context, id string) error {
	query := `
		UPDATE images
		SET owner_kind = NULL, owner_id = NULL, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to clear image owner: %w", err)
	}

	return nil
}

// DeleteImage deletes an image record.
func (r *ImageRepository) DeleteImage(ctx context.Context, id string) error {
	query := "DELETE FROM images WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanImage(row rowScanner) (*models.Image, error) {
	var image models.Image
	var ownerKind sql.NullString
	var ownerID sql.NullString

	err := row.Scan(
		&image.ID,
		&image.Title,
		&image.Path,
		&image.URL,
		&image.AltText,
		&image.Caption,
		&image.ImageType,
		&ownerKind,
		&ownerID,
		&image.CreatedAt,
		&image.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ownerKind.Valid && ownerID.Valid {
		kind := models.OwnerKind(ownerKind.String)
		image.OwnerKind = &kind
		image.OwnerID = &ownerID.String
	}

	return &image, nil
}
