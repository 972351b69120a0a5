package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/storage"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type ImageService struct {
	images      *repository.ImageRepository
	attachments *AttachmentService
	store       storage.FileStore
	log         *logger.Logger
}

func NewImageService(
	images *repository.ImageRepository,
	attachments *AttachmentService,
	store storage.FileStore,
	log *logger.Logger,
) *ImageService {
	return &ImageService{images: images, attachments: attachments, store: store, log: log}
}

// UploadImage stores a file and creates its library record. When owner is
// set the new image is linked to it immediately.
func (s *ImageService) UploadImage(ctx context.Context, upload *Upload, meta ImageMeta, imageType string, owner *models.OwnerRef) (*models.Image, error) {
	if owner != nil {
		return s.attachments.AttachNew(ctx, *owner, upload, meta)
	}

	if err := validateUpload(upload); err != nil {
		return nil, err
	}
	if imageType == "" {
		imageType = models.ImageTypeOther
	}
	if !models.ValidImageType(imageType) {
		return nil, errs.Validation("image_type", fmt.Sprintf("unknown image type %q", imageType))
	}

	image := &models.Image{
		ID:        uuid.New().String(),
		Title:     meta.Title,
		AltText:   meta.AltText,
		Caption:   meta.Caption,
		ImageType: imageType,
	}
	if image.Title == "" {
		image.Title = upload.Filename
	}

	path := imagePath(image.ID, upload)
	if err := s.store.UploadFile(path, upload.Data); err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}
	image.Path = path
	image.URL = s.store.GenerateURL(path)

	if err := s.images.CreateImage(ctx, image); err != nil {
		if delErr := s.store.DeleteFile(path); delErr != nil {
			s.log.Warnf("failed to remove orphaned file %s: %v", path, delErr)
		}
		return nil, err
	}

	s.log.Infof("uploaded image %s (%s)", image.ID, image.ImageType)
	return image, nil
}

func (s *ImageService) GetImage(ctx context.Context, id string) (*models.Image, error) {
	image, err := s.images.GetImageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, errs.NotFound("image", id)
	}
	return image, nil
}

func (s *ImageService) ListImages(ctx context.Context, filter repository.ImageFilter, page, perPage int) ([]*models.Image, int, int, int, error) {
	if filter.ImageType != "" && !models.ValidImageType(filter.ImageType) {
		return nil, 0, 0, 0, errs.Validation("image_type", fmt.Sprintf("unknown image type %q", filter.ImageType))
	}
	if filter.OwnerKind != "" {
		if _, err := models.ParseOwnerKind(filter.OwnerKind); err != nil {
			return nil, 0, 0, 0, errs.Validation("owner_kind", err.Error())
		}
	}

	page, perPage, offset := normalizePage(page, perPage)
	filter.Limit = perPage
	filter.Offset = offset

	images, total, err := s.images.ListImages(ctx, filter)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if len(images) == 0 && total > 0 && offset >= total {
		page = lastPage(total, perPage)
		filter.Offset = (page - 1) * perPage
		images, total, err = s.images.ListImages(ctx, filter)
		if err != nil {
			return nil, 0, 0, 0, err
		}
	}
	return images, total, page, perPage, nil
}

type UpdateImageInput struct {
	Title     *string
	AltText   *string
	Caption   *string
	ImageType *string
}

// UpdateImage updates an image's descriptive fields. Ownership is never
// changed here; use LinkImage for that.
func (s *ImageService) UpdateImage(ctx context.Context, id string, input UpdateImageInput) (*models.Image, error) {
	image, err := s.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		image.Title = *input.Title
	}
	if input.AltText != nil {
		image.AltText = *input.AltText
	}
	if input.Caption != nil {
		image.Caption = *input.Caption
	}
	if input.ImageType != nil {
		if !models.ValidImageType(*input.ImageType) {
			return nil, errs.Validation("image_type", fmt.Sprintf("unknown image type %q", *input.ImageType))
		}
		image.ImageType = *input.ImageType
	}

	if err := s.images.UpdateImageMeta(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// LinkImage points an owner at an existing library image.
func (s *ImageService) LinkImage(ctx context.Context, imageID, ownerKind, ownerID string) (*models.Image, error) {
	kind, err := models.ParseOwnerKind(ownerKind)
	if err != nil {
		return nil, errs.Validation("owner_kind", err.Error())
	}
	return s.attachments.LinkExisting(ctx, models.OwnerRef{Kind: kind, ID: ownerID}, imageID)
}

// ImagesForObject lists the images linked to one owner.
func (s *ImageService) ImagesForObject(ctx context.Context, ownerKind, ownerID, imageType string) ([]*models.Image, error) {
	kind, err := models.ParseOwnerKind(ownerKind)
	if err != nil {
		return nil, errs.Validation("owner_kind", err.Error())
	}
	if imageType != "" && !models.ValidImageType(imageType) {
		return nil, errs.Validation("image_type", fmt.Sprintf("unknown image type %q", imageType))
	}

	images, _, err := s.images.ListImages(ctx, repository.ImageFilter{
		OwnerKind: string(kind),
		OwnerID:   ownerID,
		ImageType: imageType,
		Limit:     maxPerPage,
	})
	return images, err
}

// DeleteImage removes an image record and its stored file. A linked image is
// detached from its owner first so no pointer dangles.
func (s *ImageService) DeleteImage(ctx context.Context, id string) error {
	image, err := s.GetImage(ctx, id)
	if err != nil {
		return err
	}

	if image.Linked() {
		ref := models.OwnerRef{Kind: *image.OwnerKind, ID: *image.OwnerID}
		if err := s.attachments.Detach(ctx, ref); err != nil {
			return err
		}
	}

	if err := s.images.DeleteImage(ctx, id); err != nil {
		return err
	}
	if image.Path != "" {
		if err := s.store.DeleteFile(image.Path); err != nil {
			s.log.Warnf("failed to delete stored file %s: %v", image.Path, err)
		}
	}

	s.log.Infof("deleted image %s", id)
	return nil
}
