package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"status_code"`
	Message    string            `json:"message"`
	Data       interface{}       `json:"data,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// Paginated wraps a list payload with paging information.
type Paginated struct {
	Items   interface{} `json:"items"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// respondError maps service errors onto HTTP statuses: validation 400,
// invalid credentials 401, not found 404, conflict 409, anything else 500.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	var validationErr *errs.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, Response{
			StatusCode: http.StatusBadRequest,
			Message:    "validation failed",
			Errors:     validationErr.Fields,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, Response{
			StatusCode: http.StatusUnauthorized,
			Message:    err.Error(),
		})
	case errs.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, Response{
			StatusCode: http.StatusNotFound,
			Message:    err.Error(),
		})
	case errs.IsConflict(err):
		writeJSON(w, http.StatusConflict, Response{
			StatusCode: http.StatusConflict,
			Message:    err.Error(),
		})
	default:
		log.Errorf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			StatusCode: http.StatusInternalServerError,
			Message:    "internal server error",
		})
	}
}
