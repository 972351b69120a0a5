package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/identifier"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type OfficialService struct {
	officials   *repository.OfficialRepository
	zones       *repository.ZoneRepository
	images      *repository.ImageRepository
	attachments *AttachmentService
	idgen       *identifier.Generator
	log         *logger.Logger
}

func NewOfficialService(
	officials *repository.OfficialRepository,
	zones *repository.ZoneRepository,
	images *repository.ImageRepository,
	attachments *AttachmentService,
	idgen *identifier.Generator,
	log *logger.Logger,
) *OfficialService {
	return &OfficialService{
		officials:   officials,
		zones:       zones,
		images:      images,
		attachments: attachments,
		idgen:       idgen,
		log:         log,
	}
}

type CreateOfficialInput struct {
	FirstName    string
	LastName     string
	ZoneName     string
	Phone        string
	Email        string
	Position     string
	OfficialType string
	Bio          string
	DisplayOrder int
	StartDate    *time.Time

	// ProfileImageID links an existing library image; Upload attaches a new
	// one. ProfileImageID wins when both are set.
	ProfileImageID string
	Upload         *Upload
	ImageMeta      ImageMeta
}

func (s *OfficialService) validateInput(position, officialType string) error {
	fields := map[string]string{}
	if !models.ValidPosition(position) {
		fields["position"] = fmt.Sprintf("unknown position %q", position)
	}
	if !models.ValidOfficialType(officialType) {
		fields["official_type"] = fmt.Sprintf("unknown official type %q", officialType)
	}
	if len(fields) > 0 {
		return errs.ValidationFields(fields)
	}
	return nil
}

// CreateOfficial registers an official in the named zone and assigns a short
// identifier from the official's initials.
func (s *OfficialService) CreateOfficial(ctx context.Context, input CreateOfficialInput) (*models.Official, error) {
	if err := s.validateInput(input.Position, input.OfficialType); err != nil {
		return nil, err
	}

	zone, err := s.zones.GetZoneByName(ctx, input.ZoneName)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, errs.NotFound("zone", input.ZoneName)
	}

	name := titleCase(strings.TrimSpace(input.FirstName + " " + input.LastName))
	exists, err := s.officials.ExistsByNameEmail(ctx, name, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("official '%s' with email '%s' already exists", name, input.Email)
	}

	official := &models.Official{
		OfficialID:   s.idgen.OfficialID(input.FirstName, input.LastName),
		ZoneID:       zone.ID,
		Name:         name,
		Phone:        input.Phone,
		Email:        strings.ToLower(input.Email),
		Position:     input.Position,
		OfficialType: input.OfficialType,
		Bio:          input.Bio,
		IsActive:     true,
		DisplayOrder: input.DisplayOrder,
		StartDate:    input.StartDate,
	}
	if err := s.officials.CreateOfficial(ctx, official); err != nil {
		return nil, err
	}

	ref := models.OwnerRef{Kind: models.OwnerOfficial, ID: official.ID}
	switch {
	case input.ProfileImageID != "":
		image, err := s.attachments.LinkExisting(ctx, ref, input.ProfileImageID)
		if err != nil {
			return nil, err
		}
		official.ProfileImageID = &image.ID
		official.ProfileImage = image
	case input.Upload != nil:
		meta := input.ImageMeta
		if meta.Title == "" {
			meta.Title = "Profile image for " + name
		}
		if meta.AltText == "" {
			meta.AltText = "Profile image of " + name
		}
		image, err := s.attachments.AttachNew(ctx, ref, input.Upload, meta)
		if err != nil {
			return nil, err
		}
		official.ProfileImageID = &image.ID
		official.ProfileImage = image
	}

	official.Zone = zone
	s.log.Infof("created official %s (%s)", official.Name, official.OfficialID)
	return official, nil
}

// GetOfficial retrieves an official by short identifier with its zone and
// profile image resolved.
func (s *OfficialService) GetOfficial(ctx context.Context, officialID string) (*models.Official, error) {
	official, err := s.officials.GetByOfficialID(ctx, officialID)
	if err != nil {
		return nil, err
	}
	if official == nil {
		return nil, errs.NotFound("official", officialID)
	}
	if err := s.decorate(ctx, official); err != nil {
		return nil, err
	}
	return official, nil
}

func (s *OfficialService) decorate(ctx context.Context, official *models.Official) error {
	zone, err := s.zones.GetZoneByID(ctx, official.ZoneID)
	if err != nil {
		return err
	}
	official.Zone = zone

	if official.ProfileImageID != nil {
		image, err := s.images.GetImageByID(ctx, *official.ProfileImageID)
		if err != nil {
			return err
		}
		official.ProfileImage = image
	}
	return nil
}

// ListOfficials retrieves officials matching the filter, paginated.
func (s *OfficialService) ListOfficials(ctx context.Context, filter repository.OfficialFilter, page, perPage int) ([]*models.Official, int, int, int, error) {
	page, perPage, offset := normalizePage(page, perPage)
	filter.Limit = perPage
	filter.Offset = offset

	officials, total, err := s.officials.ListOfficials(ctx, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if len(officials) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		filter.Offset = (page - 1) * perPage
		officials, total, err = s.officials.ListOfficials(ctx, filter)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}

	for _, official := range officials {
		if err := s.decorate(ctx, official); err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return officials, total, page, perPage, nil
}

type UpdateOfficialInput struct {
	FirstName    *string
	LastName     *string
	ZoneName     *string
	Phone        *string
	Email        *string
	Position     *string
	OfficialType *string
	Bio          *string
	IsActive     *bool
	DisplayOrder *int
	StartDate    *time.Time
	EndDate      *time.Time

	// Image changes, first match wins: RemoveImage detaches, Upload replaces,
	// ProfileImageID links an existing image.
	RemoveImage    bool
	Upload         *Upload
	ProfileImageID *string
	ImageMeta      ImageMeta
}

// UpdateOfficial updates an official's fields and, when requested, its
// profile image link. The short identifier never changes.
func (s *OfficialService) UpdateOfficial(ctx context.Context, officialID string, input UpdateOfficialInput) (*models.Official, error) {
	official, err := s.officials.GetByOfficialID(ctx, officialID)
	if err != nil {
		return nil, err
	}
	if official == nil {
		return nil, errs.NotFound("official", officialID)
	}

	if input.FirstName != nil || input.LastName != nil {
		first, last := splitName(official.Name)
		if input.FirstName != nil {
			first = *input.FirstName
		}
		if input.LastName != nil {
			last = *input.LastName
		}
		official.Name = titleCase(strings.TrimSpace(first + " " + last))
	}
	if input.ZoneName != nil {
		zone, err := s.zones.GetZoneByName(ctx, *input.ZoneName)
		if err != nil {
			return nil, err
		}
		if zone == nil {
			return nil, errs.NotFound("zone", *input.ZoneName)
		}
		official.ZoneID = zone.ID
	}
	if input.Phone != nil {
		official.Phone = *input.Phone
	}
	if input.Email != nil {
		official.Email = strings.ToLower(*input.Email)
	}
	if input.Position != nil {
		if !models.ValidPosition(*input.Position) {
			return nil, errs.Validation("position", fmt.Sprintf("unknown position %q", *input.Position))
		}
		official.Position = *input.Position
	}
	if input.OfficialType != nil {
		if !models.ValidOfficialType(*input.OfficialType) {
			return nil, errs.Validation("official_type", fmt.Sprintf("unknown official type %q", *input.OfficialType))
		}
		official.OfficialType = *input.OfficialType
	}
	if input.Bio != nil {
		official.Bio = *input.Bio
	}
	if input.IsActive != nil {
		official.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		official.DisplayOrder = *input.DisplayOrder
	}
	if input.StartDate != nil {
		official.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		official.EndDate = input.EndDate
	}

	if err := s.officials.UpdateOfficial(ctx, official); err != nil {
		return nil, err
	}

	ref := models.OwnerRef{Kind: models.OwnerOfficial, ID: official.ID}
	switch {
	case input.RemoveImage:
		if err := s.attachments.Detach(ctx, ref); err != nil {
			return nil, err
		}
		official.ProfileImageID = nil
	case input.Upload != nil:
		meta := input.ImageMeta
		if meta.Title == "" {
			meta.Title = "Profile image for " + official.Name
		}
		image, err := s.attachments.Replace(ctx, ref, input.Upload, meta)
		if err != nil {
			return nil, err
		}
		official.ProfileImageID = &image.ID
	case input.ProfileImageID != nil:
		if *input.ProfileImageID == "" {
			if err := s.attachments.Detach(ctx, ref); err != nil {
				return nil, err
			}
			official.ProfileImageID = nil
		} else {
			image, err := s.attachments.LinkExisting(ctx, ref, *input.ProfileImageID)
			if err != nil {
				return nil, err
			}
			official.ProfileImageID = &image.ID
		}
	}

	if err := s.decorate(ctx, official); err != nil {
		return nil, err
	}
	return official, nil
}

// DeleteOfficial removes an official. Any linked profile image is detached
// first so the image record stays consistent.
func (s *OfficialService) DeleteOfficial(ctx context.Context, officialID string) error {
	official, err := s.officials.GetByOfficialID(ctx, officialID)
	if err != nil {
		return err
	}
	if official == nil {
		return errs.NotFound("official", officialID)
	}

	ref := models.OwnerRef{Kind: models.OwnerOfficial, ID: official.ID}
	if err := s.attachments.Detach(ctx, ref); err != nil {
		return err
	}
	if err := s.officials.DeleteOfficial(ctx, official.ID); err != nil {
		return err
	}

	s.log.Infof("deleted official %s (%s)", official.Name, official.OfficialID)
	return nil
}

// splitName splits a full name into its first word and the rest.
func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
