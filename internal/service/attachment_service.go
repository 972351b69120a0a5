package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/storage"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

// AttachmentService keeps the two sides of an image link consistent: the
// owner reference stored on the image row and the image pointer stored on the
// owner row. Every mutation runs both sides in a single transaction so the
// link can never be half-written.
type AttachmentService struct {
	db    *sql.DB
	store storage.FileStore
	log   *logger.Logger
}

func NewAttachmentService(db *sql.DB, store storage.FileStore, log *logger.Logger) *AttachmentService {
	return &AttachmentService{db: db, store: store, log: log}
}

// imageTypeFor returns the image type recorded when an image is linked to an
// owner of the given kind.
func imageTypeFor(kind models.OwnerKind) string {
	switch kind {
	case models.OwnerOfficial:
		return models.ImageTypeProfile
	case models.OwnerNewsEvent:
		return models.ImageTypeFeatured
	default:
		return models.ImageTypeOther
	}
}

// ownerImageID reads the owner's image pointer. The second return reports
// whether the owner row exists at all.
func ownerImageID(ctx context.Context, q repository.DBTX, ref models.OwnerRef) (*string, bool, error) {
	switch ref.Kind {
	case models.OwnerOfficial:
		return repository.NewOfficialRepository(q).ProfileImageID(ctx, ref.ID)
	case models.OwnerNewsEvent:
		return repository.NewNewsRepository(q).FeaturedImageID(ctx, ref.ID)
	default:
		return nil, false, fmt.Errorf("unknown owner kind %q", ref.Kind)
	}
}

// setOwnerImageID writes the owner's image pointer.
func setOwnerImageID(ctx context.Context, q repository.DBTX, ref models.OwnerRef, imageID *string) error {
	switch ref.Kind {
	case models.OwnerOfficial:
		return repository.NewOfficialRepository(q).SetProfileImage(ctx, ref.ID, imageID)
	case models.OwnerNewsEvent:
		return repository.NewNewsRepository(q).SetFeaturedImage(ctx, ref.ID, imageID)
	default:
		return fmt.Errorf("unknown owner kind %q", ref.Kind)
	}
}

func (s *AttachmentService) withTx(ctx context.Context, fn func(q repository.DBTX) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AttachNew validates and stores an uploaded file, creates its image record
// and links it to the owner. An image already linked to the owner is detached
// but kept in the library. Validation failures reject the whole operation
// before any write happens.
func (s *AttachmentService) AttachNew(ctx context.Context, ref models.OwnerRef, upload *Upload, meta ImageMeta) (*models.Image, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	image := &models.Image{
		ID:        uuid.New().String(),
		Title:     meta.Title,
		AltText:   meta.AltText,
		Caption:   meta.Caption,
		ImageType: imageTypeFor(ref.Kind),
	}
	if image.Title == "" {
		image.Title = upload.Filename
	}
	kind, ownerID := ref.Kind, ref.ID
	image.OwnerKind = &kind
	image.OwnerID = &ownerID

	path := imagePath(image.ID, upload)
	if err := s.store.UploadFile(path, upload.Data); err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}
	image.Path = path
	image.URL = s.store.GenerateURL(path)

	err := s.withTx(ctx, func(q repository.DBTX) error {
		images := repository.NewImageRepository(q)
		current, exists, err := ownerImageID(ctx, q, ref)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFound(string(ref.Kind), ref.ID)
		}
		if current != nil {
			if err := images.ClearImageOwner(ctx, *current); err != nil {
				return err
			}
		}
		if err := images.CreateImage(ctx, image); err != nil {
			return err
		}
		return setOwnerImageID(ctx, q, ref, &image.ID)
	})
	if err != nil {
		// The file was written before the transaction; remove it so a
		// failed attach leaves nothing behind.
		if delErr := s.store.DeleteFile(path); delErr != nil {
			s.log.Warnf("failed to remove orphaned file %s: %v", path, delErr)
		}
		return nil, err
	}

	s.log.Infof("attached image %s to %s %s", image.ID, ref.Kind, ref.ID)
	return image, nil
}

// Replace swaps the owner's current image for a newly uploaded one. The
// previous image is detached, not deleted.
func (s *AttachmentService) Replace(ctx context.Context, ref models.OwnerRef, upload *Upload, meta ImageMeta) (*models.Image, error) {
	return s.AttachNew(ctx, ref, upload, meta)
}

// Detach removes the link between the owner and its current image. The image
// record and its file survive. Detaching an owner with no image is a no-op.
func (s *AttachmentService) Detach(ctx context.Context, ref models.OwnerRef) error {
	return s.withTx(ctx, func(q repository.DBTX) error {
		current, exists, err := ownerImageID(ctx, q, ref)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFound(string(ref.Kind), ref.ID)
		}
		if current == nil {
			return nil
		}
		if err := repository.NewImageRepository(q).ClearImageOwner(ctx, *current); err != nil {
			return err
		}
		return setOwnerImageID(ctx, q, ref, nil)
	})
}

// LinkExisting points the owner at an image already in the library. A missing
// image or owner fails the operation without touching either side.
func (s *AttachmentService) LinkExisting(ctx context.Context, ref models.OwnerRef, imageID string) (*models.Image, error) {
	var linked *models.Image
	err := s.withTx(ctx, func(q repository.DBTX) error {
		images := repository.NewImageRepository(q)
		image, err := images.GetImageByID(ctx, imageID)
		if err != nil {
			return err
		}
		if image == nil {
			return errs.NotFound("image", imageID)
		}
		current, exists, err := ownerImageID(ctx, q, ref)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFound(string(ref.Kind), ref.ID)
		}
		if current != nil && *current != imageID {
			if err := images.ClearImageOwner(ctx, *current); err != nil {
				return err
			}
		}
		imageType := imageTypeFor(ref.Kind)
		if err := images.SetImageOwner(ctx, imageID, ref, imageType); err != nil {
			return err
		}
		if err := setOwnerImageID(ctx, q, ref, &imageID); err != nil {
			return err
		}
		kind, ownerID := ref.Kind, ref.ID
		image.OwnerKind = &kind
		image.OwnerID = &ownerID
		image.ImageType = imageType
		linked = image
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof("linked image %s to %s %s", imageID, ref.Kind, ref.ID)
	return linked, nil
}
