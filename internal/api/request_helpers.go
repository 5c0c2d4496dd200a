package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/service/auth"
)

// getPathID extracts a non-empty identifier from the URL path. Identifiers
// are opaque here; backends report unparseable ones as not found.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required")
	}
	return id, nil
}

// decodeBody decodes the JSON body into v and reports malformed bodies as
// validation errors.
func decodeBody(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			return domain.NewValidationError("", "request body is required")
		}
		return domain.NewValidationError("", "invalid request format")
	}
	return nil
}

// callerClaims returns the authenticated caller's claims.
func callerClaims(r *http.Request) (*auth.Claims, bool) {
	return shared.ClaimsFromContext(r.Context())
}

// outcomeOf classifies err for metric labels.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrAuth):
		return "rejected"
	default:
		return "error"
	}
}
