package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/service/auth"
)

// errForbidden is reported when an authenticated caller acts outside its role.
var errForbidden = errors.New("forbidden")

// MapErrorToStatusCode maps internal errors to HTTP status codes by kind,
// so handlers never inspect concrete error types.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAuth),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, errForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message that can be shown to clients.
// Domain errors describe the caller's mistake and are returned as is;
// anything else gets a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrBadCredentials):
		// One message for both, so the endpoint does not reveal which emails exist.
		return "Invalid credentials"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict):
		return domainMessage(err)
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, errForbidden):
		return "Insufficient permissions"
	default:
		return "An unexpected error occurred"
	}
}

// domainMessage extracts the innermost NotFoundError or ConflictError text,
// dropping any operation prefixes added while wrapping.
func domainMessage(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	return "An unexpected error occurred"
}

// SanitizeValidationError turns validator output into a short message that
// names the offending field without echoing struct internals.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	var derr *domain.ValidationError
	if errors.As(err, &derr) {
		return derr.Error()
	}
	return "Validation error"
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "len":
		return "wrong length"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be positive"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. fallback
// replaces the generic message for 5xx responses when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
