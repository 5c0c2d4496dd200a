package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/redact"
	"github.com/gymdesk/gym-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token and stores its claims in the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			} else {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			}
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err == nil && claims == nil {
			err = auth.ErrInvalidToken
		}
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		log := logger.FromContext(r.Context()).With("user_id", claims.UserID, "rol", string(claims.Rol))
		ctx := logger.WithLogger(shared.WithClaims(r.Context(), claims), log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var errMalformedHeader = errors.New("malformed authorization header")

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errMalformedHeader
	}
	return token, nil
}

// RequireRole rejects authenticated callers whose role is not in roles.
// It must run after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := shared.ClaimsFromContext(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			if _, ok := allowed[claims.Rol]; !ok {
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
