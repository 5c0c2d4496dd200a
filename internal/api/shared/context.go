package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/service/auth"
)

// ContextKey is the type of request context keys owned by this package.
type ContextKey string

const (
	// ClaimsContextKey holds the validated token claims of the caller.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID returns a copy of ctx carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return logger.WithTraceID(ctx, generateTraceID())
}

// GetTraceID returns the trace ID stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	return logger.TraceIDFromContext(ctx)
}

// generateTraceID returns 32 random hex characters. If crypto/rand fails it
// falls back to a random UUID rather than a static value.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}

// WithClaims returns a copy of ctx carrying the caller's claims.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, c)
}

// ClaimsFromContext returns the caller's claims, if the request was authenticated.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return c, ok && c != nil
}
