package api

import (
	"errors"
	"net/http"

	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/metrics"
	"github.com/gymdesk/gym-api/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	auth    service.AuthService
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(auth service.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	h.metrics.LoginAttempt(loginOutcome(err))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message:   "Login exitoso",
		Token:     res.Token,
		User:      res.Identity.Nombre,
		Rol:       res.Identity.Rol,
		Plan:      res.Identity.Plan,
		ID:        res.Identity.ID,
		ExpiresAt: formatExpiry(res.ExpiresAt),
	})
}

// LoginRateLimited counts a login rejected before reaching the handler.
func (h *AuthHandler) LoginRateLimited() {
	h.metrics.LoginAttempt("rate_limited")
}

func loginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrUserNotFound):
		return "unknown_user"
	case errors.Is(err, domain.ErrBadCredentials):
		return "bad_credentials"
	default:
		return "error"
	}
}
