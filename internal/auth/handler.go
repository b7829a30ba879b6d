package auth

import (
	"net/http"

	"github.com/filmdb/movies-api/internal/httpx"
	"github.com/filmdb/movies-api/internal/logging"
	"github.com/filmdb/movies-api/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc    *Service
	logger logging.Logger
}

func NewHandler(svc *Service, logger logging.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	id, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, models.RegisterResponse{
		Message: "registration successful",
		UserID:  id,
	})
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Fail(w, r, h.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.LoginResponse{
		Message: "login successful",
		Token:   token,
	})
}
