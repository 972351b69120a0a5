package handler

import (
	"net/http"
	"time"

	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/service"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

type AuthHandler struct {
	auth     *service.AuthService
	validate *validation.Validator
	log      *logger.Logger
}

func NewAuthHandler(auth *service.AuthService, validate *validation.Validator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate, log: log}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusCreated, "user registered", user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
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

	user, token, expiresAt, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.log, err)
		return
	}
	respondData(w, http.StatusOK, "login successful", loginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}
