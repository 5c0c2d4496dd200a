// Package logger builds the JSON slog logger used by both binaries and
// carries request-scoped loggers and trace IDs through context.Context.
package logger
