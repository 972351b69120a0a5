package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type OfficialHandler struct {
	officials *service.OfficialService
	validate  *validation.Validator
	log       *logger.Logger
}

func NewOfficialHandler(officials *service.OfficialService, validate *validation.Validator, log *logger.Logger) *OfficialHandler {
	return &OfficialHandler{officials: officials, validate: validate, log: log}
}

type createOfficialRequest struct {
	FirstName      string `json:"first_name" validate:"required,min=1,max=50"`
	LastName       string `json:"last_name" validate:"required,min=1,max=50"`
	ZoneName       string `json:"zone_name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Position       string `json:"position" validate:"required"`
	OfficialType   string `json:"official_type" validate:"required"`
	Bio            string `json:"bio"`
	DisplayOrder   int    `json:"display_order"`
	StartDate      string `json:"start_date"`
	ProfileImageID string `json:"profile_image_id"`
}

// CreateOfficial accepts either a JSON body or a multipart form with an
// optional profile_image file.
func (h *OfficialHandler) CreateOfficial(w http.ResponseWriter, r *http.Request) {
	var req createOfficialRequest
	var upload *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respondError(w, h.log, errs.Validation("body", "invalid multipart form"))
			return
		}
		req = createOfficialRequest{
			FirstName:      r.FormValue("first_name"),
			LastName:       r.FormValue("last_name"),
			ZoneName:       r.FormValue("zone_name"),
			Phone:          r.FormValue("phone"),
			Email:          r.FormValue("email"),
			Position:       r.FormValue("position"),
			OfficialType:   r.FormValue("official_type"),
			Bio:            r.FormValue("bio"),
			StartDate:      r.FormValue("start_date"),
			ProfileImageID: r.FormValue("profile_image_id"),
		}
		req.DisplayOrder, _ = strconv.Atoi(r.FormValue("display_order"))

		var err error
		if upload, err = formUpload(r, "profile_image"); err != nil {
			respondError(w, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
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

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, h.log, errs.Validation("start_date", "invalid date format"))
		return
	}

	official, err := h.officials.CreateOfficial(r.Context(), service.CreateOfficialInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ZoneName:       req.ZoneName,
		Phone:          req.Phone,
		Email:          req.Email,
		Position:       req.Position,
		OfficialType:   req.OfficialType,
		Bio:            req.Bio,
		DisplayOrder:   req.DisplayOrder,
		StartDate:      startDate,
		ProfileImageID: req.ProfileImageID,
		Upload:         upload,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "official created", official)
}

func (h *OfficialHandler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	official, err := h.officials.GetOfficial(r.Context(), mux.Vars(r)["official_id"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "official retrieved", official)
}

func (h *OfficialHandler) ListOfficials(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	query := r.URL.Query()
	filter := repository.OfficialFilter{
		OfficialType: query.Get("official_type"),
		Position:     query.Get("position"),
		ZoneSlug:     query.Get("zone"),
	}

	officials, total, page, perPage, err := h.officials.ListOfficials(r.Context(), filter, page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "officials retrieved", Paginated{
		Items:   officials,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

type updateOfficialRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName       *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	ZoneName       *string `json:"zone_name"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Position       *string `json:"position"`
	OfficialType   *string `json:"official_type"`
	Bio            *string `json:"bio"`
	IsActive       *bool   `json:"is_active"`
	DisplayOrder   *int    `json:"display_order"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	ProfileImageID *string `json:"profile_image_id"`
	RemoveImage    bool    `json:"remove_image"`
}

// UpdateOfficial accepts either a JSON body or a multipart form with an
// optional replacement profile_image file.
func (h *OfficialHandler) UpdateOfficial(w http.ResponseWriter, r *http.Request) {
	var req updateOfficialRequest
	var upload *service.Upload

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			respondError(w, h.log, errs.Validation("body", "invalid multipart form"))
			return
		}
		req = updateOfficialRequest{
			FirstName:      formString(r, "first_name"),
			LastName:       formString(r, "last_name"),
			ZoneName:       formString(r, "zone_name"),
			Phone:          formString(r, "phone"),
			Email:          formString(r, "email"),
			Position:       formString(r, "position"),
			OfficialType:   formString(r, "official_type"),
			Bio:            formString(r, "bio"),
			StartDate:      formString(r, "start_date"),
			EndDate:        formString(r, "end_date"),
			ProfileImageID: formString(r, "profile_image_id"),
		}
		if v := r.FormValue("is_active"); v != "" {
			active := v == "true" || v == "1"
			req.IsActive = &active
		}
		if v := r.FormValue("display_order"); v != "" {
			if order, err := strconv.Atoi(v); err == nil {
				req.DisplayOrder = &order
			}
		}
		req.RemoveImage = r.FormValue("remove_image") == "true"

		var err error
		if upload, err = formUpload(r, "profile_image"); err != nil {
			respondError(w, h.log, err)
			return
		}
	} else if err := decodeJSON(r, &req); err != nil {
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

	input := service.UpdateOfficialInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ZoneName:       req.ZoneName,
		Phone:          req.Phone,
		Email:          req.Email,
		Position:       req.Position,
		OfficialType:   req.OfficialType,
		Bio:            req.Bio,
		IsActive:       req.IsActive,
		DisplayOrder:   req.DisplayOrder,
		ProfileImageID: req.ProfileImageID,
		RemoveImage:    req.RemoveImage,
		Upload:         upload,
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			respondError(w, h.log, errs.Validation("start_date", "invalid date format"))
			return
		}
		input.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			respondError(w, h.log, errs.Validation("end_date", "invalid date format"))
			return
		}
		input.EndDate = endDate
	}

	official, err := h.officials.UpdateOfficial(r.Context(), mux.Vars(r)["official_id"], input)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "official updated", official)
}

func (h *OfficialHandler) DeleteOfficial(w http.ResponseWriter, r *http.Request) {
	if err := h.officials.DeleteOfficial(r.Context(), mux.Vars(r)["official_id"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "official deleted", nil)
}
