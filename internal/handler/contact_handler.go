package handler

import (
	"net/http"

	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type ContactHandler struct {
	contacts *service.ContactService
	log      *logger.Logger
}

func NewContactHandler(contacts *service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, log: log}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.log, err)
		return
	}

	submission, err := h.contacts.SubmitContact(r.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "contact submission received", submission)
}

// SubjectChoices returns the accepted contact subjects for form rendering.
func (h *ContactHandler) SubjectChoices(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, "contact subjects retrieved", h.contacts.SubjectChoices())
}

func (h *ContactHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r)
	query := r.URL.Query()
	filter := repository.ContactFilter{
		Email:   query.Get("email"),
		Subject: query.Get("subject"),
	}

	submissions, total, page, perPage, err := h.contacts.ListSubmissions(r.Context(), filter, page, perPage)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "contact submissions retrieved", Paginated{
		Items:   submissions,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}
