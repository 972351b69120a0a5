package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type ImageHandler struct {
	images   *service.ImageService
	validate *validation.Validator
	log      *logger.Logger
}

func NewImageHandler(images *service.ImageService, validate *validation.Validator, log *logger.Logger) *ImageHandler {
	return &ImageHandler{images: images, validate: validate, log: log}
}

// UploadImage stores a standalone library image, optionally linking it to an
// owner when owner_kind and owner_id are sent.
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respondError(w, h.log, errs.Validation("body", "invalid multipart form"))
		return
	}

	upload, err := formUpload(r, "file")
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	if upload == nil {
		respondError(w, h.log, errs.Validation("file", "file is required"))
		return
	}

	meta := service.ImageMeta{
		Title:   r.FormValue("title"),
		AltText: r.FormValue("alt_text"),
		Caption: r.FormValue("caption"),
	}

	var owner *models.OwnerRef
	if ownerKind := r.FormValue("owner_kind"); ownerKind != "" {
		kind, err := models.ParseOwnerKind(ownerKind)
		if err != nil {
			respondError(w, h.log, errs.Validation("owner_kind", err.Error()))
			return
		}
		ownerID := r.FormValue("owner_id")
		if ownerID == "" {
			respondError(w, h.log, errs.Validation("owner_id", "owner_id is required with owner_kind"))
			return
		}
		owner = &models.OwnerRef{Kind: kind, ID: ownerID}
	}

	image, err := h.images.UploadImage(r.Context(), upload, meta, r.FormValue("image_type"), owner)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "image uploaded", image)
}

func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.images.GetImage(r.Context(), mux.Vars(r)["image_id"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "image retrieved", image)
}

func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	query := r.URL.Query()
	filter := repository.ImageFilter{
		ImageType: query.Get("image_type"),
		OwnerKind: query.Get("owner_kind"),
		OwnerID:   query.Get("owner_id"),
	}

	images, total, page, perPage, err := h.images.ListImages(r.Context(), filter, page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "images retrieved", Paginated{
		Items:   images,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// ImagesForObject lists every image linked to one owner.
func (h *ImageHandler) ImagesForObject(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	images, err := h.images.ImagesForObject(r.Context(), query.Get("owner_kind"), query.Get("owner_id"), query.Get("image_type"))
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "images retrieved", images)
}

type updateImageRequest struct {
	Title     *string `json:"title"`
	AltText   *string `json:"alt_text"`
	Caption   *string `json:"caption"`
	ImageType *string `json:"image_type"`
}

func (h *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	var req updateImageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	image, err := h.images.UpdateImage(r.Context(), mux.Vars(r)["image_id"], service.UpdateImageInput{
		Title:     req.Title,
		AltText:   req.AltText,
		Caption:   req.Caption,
		ImageType: req.ImageType,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "image updated", image)
}

type linkImageRequest struct {
	OwnerKind string `json:"owner_kind" validate:"required"`
	OwnerID   string `json:"owner_id" validate:"required"`
}

// LinkImage points an owner at an existing library image.
func (h *ImageHandler) LinkImage(w http.ResponseWriter, r *http.Request) {
	var req linkImageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}
	if fields := h.validate.Validate(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "validation failed",
			Errors:     fields,
		})
		return
	}

	image, err := h.images.LinkImage(r.Context(), mux.Vars(r)["image_id"], req.OwnerKind, req.OwnerID)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "image linked", image)
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.images.DeleteImage(r.Context(), mux.Vars(r)["image_id"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "image deleted", nil)
}
