package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/models"
)

const zoneColumns = "id, name, slug, description, created_at, updated_at"

type ZoneRepository struct {
	db DBTX
}

func NewZoneRepository(db DBTX) *ZoneRepository {
	return &ZoneRepository{db: db}
}

// CreateZone inserts a new zone.
func (r *ZoneRepository) CreateZone(ctx context.Context, zone *models.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.New().String()
	}

	query := `
		INSERT INTO zones (id, name, slug, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query, zone.ID, zone.Name, zone.Slug, zone.Description)
	if err != nil {
		return fmt.Errorf("failed to create zone: %w", err)
	}

	return nil
}

// GetZoneBySlug retrieves a zone by slug. Returns (nil, nil) when absent.
func (r *ZoneRepository) GetZoneBySlug(ctx context.Context, slug string) (*models.Zone, error) {
	query := "SELECT " + zoneColumns + " FROM zones WHERE slug = ?"
	return r.getZone(ctx, query, slug)
}

// GetZoneByID retrieves a zone by primary key. Returns (nil, nil) when absent.
func (r *ZoneRepository) GetZoneByID(ctx context.Context, id string) (*models.Zone, error) {
	query := "SELECT " + zoneColumns + " FROM zones WHERE id = ?"
	return r.getZone(ctx, query, id)
}

// GetZoneByName retrieves a zone by case-insensitive name match.
func (r *ZoneRepository) GetZoneByName(ctx context.Context, name string) (*models.Zone, error) {
	query := "SELECT " + zoneColumns + " FROM zones WHERE LOWER(name) = LOWER(?)"
	return r.getZone(ctx, query, name)
}

func (r *ZoneRepository) getZone(ctx context.Context, query string, arg interface{}) (*models.Zone, error) {
	var zone models.Zone
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&zone.ID,
		&zone.Name,
		&zone.Slug,
		&zone.Description,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}

	return &zone, nil
}

// SlugExists reports whether a zone already uses the slug.
func (r *ZoneRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM zones WHERE slug = ?", slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check zone slug: %w", err)
	}
	return count > 0, nil
}

// NameExists reports whether a zone already uses the name
// (case-insensitive), optionally excluding one slug.
func (r *ZoneRepository) NameExists(ctx context.Context, name, excludeSlug string) (bool, error) {
	query := "SELECT COUNT(*) FROM zones WHERE LOWER(name) = LOWER(?)"
	args := []interface{}{name}
	if excludeSlug != "" {
		query += " AND slug != ?"
		args = append(args, excludeSlug)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check zone name: %w", err)
	}
	return count > 0, nil
}

// ListZones retrieves zones ordered by name along with the total count.
func (r *ZoneRepository) ListZones(ctx context.Context, limit, offset int) ([]*models.Zone, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM zones").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count zones: %w", err)
	}

	query := "SELECT " + zoneColumns + " FROM zones ORDER BY name LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	var zones []*models.Zone
	for rows.Next() {
		var zone models.Zone
		if err := rows.Scan(
			&zone.ID,
			&zone.Name,
			&zone.Slug,
			&zone.Description,
			&zone.CreatedAt,
			&zone.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, &zone)
	}

	return zones, total, nil
}

// UpdateZone updates a zone's name and description.
func (r *ZoneRepository) UpdateZone(ctx context.Context, zone *models.Zone) error {
	query := `
		UPDATE zones
		SET name = ?, description = ?, updated_at = NOW()
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query, zone.Name, zone.Description, zone.ID)
	if err != nil {
		return fmt.Errorf("failed to update zone: %w", err)
	}

	return nil
}

// HasOfficials reports whether any official belongs to the zone.
func (r *ZoneRepository) HasOfficials(ctx context.Context, zoneID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM officials WHERE zone_id = ?", zoneID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count zone officials: %w", err)
	}
	return count > 0, nil
}

// DeleteZone deletes a zone record.
func (r *ZoneRepository) DeleteZone(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM zones WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	return nil
}
