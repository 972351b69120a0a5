package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type ZoneHandler struct {
	zones    *service.ZoneService
	validate *validation.Validator
	log      *logger.Logger
}

func NewZoneHandler(zones *service.ZoneService, validate *validation.Validator, log *logger.Logger) *ZoneHandler {
	return &ZoneHandler{zones: zones, validate: validate, log: log}
}

type createZoneRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

func (h *ZoneHandler) CreateZone(w http.ResponseWriter, r *http.Request) {
	var req createZoneRequest
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

	zone, err := h.zones.CreateZone(r.Context(), req.Name, req.Description)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "zone created", zone)
}

func (h *ZoneHandler) GetZone(w http.ResponseWriter, r *http.Request) {
	zone, err := h.zones.GetZone(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "zone retrieved", zone)
}

func (h *ZoneHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	zones, total, page, perPage, err := h.zones.ListZones(r.Context(), page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "zones retrieved", Paginated{
		Items:   zones,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

type updateZoneRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
}

func (h *ZoneHandler) UpdateZone(w http.ResponseWriter, r *http.Request) {
	var req updateZoneRequest
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

	zone, err := h.zones.UpdateZone(r.Context(), mux.Vars(r)["slug"], service.UpdateZoneInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "zone updated", zone)
}

func (h *ZoneHandler) DeleteZone(w http.ResponseWriter, r *http.Request) {
	if err := h.zones.DeleteZone(r.Context(), mux.Vars(r)["slug"]); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "zone deleted", nil)
}
