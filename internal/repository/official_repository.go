package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

const officialColumns = `id, official_id, zone_id, name, phone, email, position, official_type,
	bio, profile_image_id, is_active, display_order, start_date, end_date, created_at, updated_at`

type OfficialRepository struct {
	db DBTX
}

func NewOfficialRepository(db DBTX) *OfficialRepository {
	return &OfficialRepository{db: db}
}

// OfficialFilter narrows ListOfficials results. Zero values mean no filter.
type OfficialFilter struct {
	OfficialType string
	Position     string
	ZoneSlug     string
	Limit        int
	Offset       int
}

// CreateOfficial inserts a new official.
func (r *OfficialRepository) CreateOfficial(ctx context.Context, official *models.Official) error {
	if official.ID == "" {
		official.ID = uuid.New().String()
	}

	query := `
		INSERT INTO officials (id, official_id, zone_id, name, phone, email, position, official_type,
			bio, profile_image_id, is_active, display_order, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		official.ID,
		official.OfficialID,
		official.ZoneID,
		official.Name,
		official.Phone,
		official.Email,
		official.Position,
		official.OfficialType,
		official.Bio,
		official.ProfileImageID,
		official.IsActive,
		official.DisplayOrder,
		official.StartDate,
		official.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create official: %w", err)
	}

	return nil
}

// GetByOfficialID retrieves an official by its short identifier.
// Returns (nil, nil) when absent.
func (r *OfficialRepository) GetByOfficialID(ctx context.Context, officialID string) (*models.Official, error) {
	query := "SELECT " + officialColumns + " FROM officials WHERE official_id = ?"
	return r.getOfficial(ctx, query, officialID)
}

// GetByID retrieves an official by primary key. Returns (nil, nil) when absent.
func (r *OfficialRepository) GetByID(ctx context.Context, id string) (*models.Official, error) {
	query := "SELECT " + officialColumns + " FROM officials WHERE id = ?"
	return r.getOfficial(ctx, query, id)
}

func (r *OfficialRepository) getOfficial(ctx context.Context, query string, arg interface{}) (*models.Official, error) {
	official, err := scanOfficial(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get official: %w", err)
	}
	return official, nil
}

// ExistsByNameEmail reports whether an official with the same name and
// email already exists (both compared case-insensitively).
func (r *OfficialRepository) ExistsByNameEmail(ctx context.Context, name, email string) (bool, error) {
	query := "SELECT COUNT(*) FROM officials WHERE LOWER(name) = LOWER(?) AND LOWER(email) = LOWER(?)"

	var count int
	if err := r.db.QueryRowContext(ctx, query, name, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check official existence: %w", err)
	}
	return count > 0, nil
}

// ListOfficials retrieves officials matching the filter, ordered by display
// order then name, along with the total count.
func (r *OfficialRepository) ListOfficials(ctx context.Context, filter OfficialFilter) ([]*models.Official, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.OfficialType != "" {
		where += " AND o.official_type = ?"
		args = append(args, filter.OfficialType)
	}
	if filter.Position != "" {
		where += " AND o.position = ?"
		args = append(args, filter.Position)
	}
	if filter.ZoneSlug != "" {
		where += " AND o.zone_id IN (SELECT id FROM zones WHERE slug = ?)"
		args = append(args, filter.ZoneSlug)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM officials o" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count officials: %w", err)
	}

	query := `SELECT o.id, o.official_id, o.zone_id, o.name, o.phone, o.email, o.position, o.official_type,
		o.bio, o.profile_image_id, o.is_active, o.display_order, o.start_date, o.end_date, o.created_at, o.updated_at
		FROM officials o` + where + " ORDER BY o.display_order, o.name LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list officials: %w", err)
	}
	defer rows.Close()

	var officials []*models.Official
	for rows.Next() {
		official, err := scanOfficial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan official: %w", err)
		}
		officials = append(officials, official)
	}

	return officials, total, nil
}

// UpdateOfficial updates an official's mutable fields.
func (r *OfficialRepository) UpdateOfficial(ctx context.Context, official *models.Official) error {
	query := `
		UPDATE officials
		SET zone_id = ?, name = ?, phone = ?, email = ?, position = ?, official_type = ?,
			bio = ?, is_active = ?, display_order = ?, start_date = ?, end_date = ?, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		official.ZoneID,
		official.Name,
		official.Phone,
		official.Email,
		official.Position,
		official.OfficialType,
		official.Bio,
		official.IsActive,
		official.DisplayOrder,
		official.StartDate,
		official.EndDate,
		official.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update official: %w", err)
	}

	return nil
}

// SetProfileImage updates the official's profile image pointer. A nil
// imageID clears it.
func (r *OfficialRepository) SetProfileImage(ctx context.Context, id string, imageID *string) error {
	query := "UPDATE officials SET profile_image_id = ?, updated_at = NOW() WHERE id = ?"

	_, err := r.db.ExecContext(ctx, query, imageID, id)
	if err != nil {
		return fmt.Errorf("failed to set official profile image: %w", err)
	}

	return nil
}

// ProfileImageID returns the official's current profile image pointer.
// The second return value reports whether the official exists.
func (r *OfficialRepository) ProfileImageID(ctx context.Context, id string) (*string, bool, error) {
	var imageID sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT profile_image_id FROM officials WHERE id = ?", id).Scan(&imageID)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get official profile image: %w", err)
	}

	if imageID.Valid {
		return &imageID.String, true, nil
	}
	return nil, true, nil
}

// DeleteOfficial deletes an official record.
func (r *OfficialRepository) DeleteOfficial(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM officials WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete official: %w", err)
	}
	return nil
}

func scanOfficial(row rowScanner) (*models.Official, error) {
	var official models.Official
	var profileImageID sql.NullString
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&official.ID,
		&official.OfficialID,
		&official.ZoneID,
		&official.Name,
		&official.Phone,
		&official.Email,
		&official.Position,
		&official.OfficialType,
		&official.Bio,
		&profileImageID,
		&official.IsActive,
		&official.DisplayOrder,
		&startDate,
		&endDate,
		&official.CreatedAt,
		&official.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profileImageID.Valid {
		official.ProfileImageID = &profileImageID.String
	}
	if startDate.Valid {
		official.StartDate = &startDate.Time
	}
	if endDate.Valid {
		official.EndDate = &endDate.Time
	}

	return &official, nil
}
