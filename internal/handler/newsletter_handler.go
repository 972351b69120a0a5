package handler

import (
	"net/http"

	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type NewsletterHandler struct {
	newsletter *service.NewsletterService
	log        *logger.Logger
}

func NewNewsletterHandler(newsletter *service.NewsletterService, log *logger.Logger) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter, log: log}
}

type newsletterRequest struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	subscriber, reactivated, err := h.newsletter.Subscribe(r.Context(), req.Email)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	message := "subscribed to newsletter"
	if reactivated {
		message = "newsletter subscription reactivated"
	}
	respondData(w, http.StatusCreated, message, subscriber)
}

func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	if err := h.newsletter.Unsubscribe(r.Context(), req.Email); err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "unsubscribed from newsletter", nil)
}

func (h *NewsletterHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	activeOnly := r.URL.Query().Get("active") != "false"

	subscribers, total, page, perPage, err := h.newsletter.ListSubscribers(r.Context(), activeOnly, page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "subscribers retrieved", Paginated{
		Items:   subscribers,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}
