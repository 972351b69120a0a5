package service

import (
	"context"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/identifier"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type ZoneService struct {
	zones *repository.ZoneRepository
	idgen *identifier.Generator
	log   *logger.Logger
}

func NewZoneService(zones *repository.ZoneRepository, idgen *identifier.Generator, log *logger.Logger) *ZoneService {
	return &ZoneService{zones: zones, idgen: idgen, log: log}
}

// CreateZone creates a zone with a generated slug. Zone names are unique
// case-insensitively and stored title-cased.
func (s *ZoneService) CreateZone(ctx context.Context, name, description string) (*models.Zone, error) {
	if len(name) < 2 {
		return nil, errs.Validation("name", "name must be at least 2 characters")
	}

	exists, err := s.zones.NameExists(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("zone '%s' already exists", name)
	}

	slug, err := s.idgen.ZoneSlug(name, func(slug string) (bool, error) {
		return s.zones.SlugExists(ctx, slug)
	})
	if err != nil {
		return nil, err
	}

	zone := &models.Zone{
		Name:        titleCase(name),
		Slug:        slug,
		Description: description,
	}
	if err := s.zones.CreateZone(ctx, zone); err != nil {
		return nil, err
	}

	s.log.Infof("created zone %s with slug %s", zone.Name, zone.Slug)
	return zone, nil
}

func (s *ZoneService) GetZone(ctx context.Context, slug string) (*models.Zone, error) {
	zone, err := s.zones.GetZoneBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, errs.NotFound("zone", slug)
	}
	return zone, nil
}

func (s *ZoneService) ListZones(ctx context.Context, page, perPage int) ([]*models.Zone, int, int, int, error) {
	page, perPage, offset := normalizePage(page, perPage)
	zones, total, err := s.zones.ListZones(ctx, perPage, offset)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	// An out-of-range page falls back to the last page that has items.
	if len(zones) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		zones, total, err = s.zones.ListZones(ctx, perPage, (page-1)*perPage)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return zones, total, page, perPage, nil
}

type UpdateZoneInput struct {
	Name        *string
	Description *string
}

// UpdateZone updates a zone's name and description. The slug is stable and
// never regenerated.
func (s *ZoneService) UpdateZone(ctx context.Context, slug string, input UpdateZoneInput) (*models.Zone, error) {
	zone, err := s.GetZone(ctx, slug)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != "" {
		exists, err := s.zones.NameExists(ctx, *input.Name, slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errs.Conflict("zone '%s' already exists", *input.Name)
		}
		zone.Name = titleCase(*input.Name)
	}
	if input.Description != nil {
		zone.Description = *input.Description
	}

	if err := s.zones.UpdateZone(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// DeleteZone removes a zone. Zones with assigned officials cannot be deleted.
func (s *ZoneService) DeleteZone(ctx context.Context, slug string) error {
	zone, err := s.GetZone(ctx, slug)
	if err != nil {
		return err
	}

	hasOfficials, err := s.zones.HasOfficials(ctx, zone.ID)
	if err != nil {
		return err
	}
	if hasOfficials {
		return errs.Conflict("zone '%s' still has officials assigned", zone.Name)
	}

	if err := s.zones.DeleteZone(ctx, zone.ID); err != nil {
		return err
	}
	s.log.Infof("deleted zone %s", zone.Slug)
	return nil
}
