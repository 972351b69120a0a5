package handler

import (
	"database/sql"
	"net/http"

	"github.com/Sobilo34/Tyma-server/pkg/logger"
)

type HealthHandler struct {
	db  *sql.DB
	log *logger.Logger
}

func NewHealthHandler(db *sql.DB, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health reports service liveness and database reachability.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.db.PingContext(r.Context()); err != nil {
		h.log.Errorf("health check database ping failed: %v", err)
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, Response{
		Success:    httpStatus == http.StatusOK,
		StatusCode: httpStatus,
		Message:    "health check",
		Data:       map[string]string{"status": status},
	})
}
