// Package redact removes sensitive information from strings before they are
// logged or returned in error responses: connection strings with credentials,
// passwords, bcrypt hashes, bearer tokens, file paths and the like.
package redact

import (
	"log/slog"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules see the raw input.
var rules = []rule{
	// Connection strings with userinfo
	{regexp.MustCompile(`(?i)(postgres|postgresql|mongodb(\+srv)?|redis|rediss)://[^@\s/]+@`), RedactedCredentialPlaceholder},

	// bcrypt hashes, before the generic key rule can split them
	{regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`), "[REDACTED_HASH]"},

	// JWTs: three base64url segments
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), "[REDACTED_JWT]"},

	// Credentials in key=value form
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},

	// File paths
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},

	// Stack trace fragments
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},

	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[REDACTED_EMAIL]"},

	// SQL statements echoed by the driver
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\w,*()$:.]+\b(FROM|INTO|SET)\b[^;]*`), "[REDACTED_SQL]"},

	// Hostnames with an optional port
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), "[REDACTED_HOST]"},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// secretKeys are log attribute keys whose values are never written.
var secretKeys = map[string]bool{
	"password":      true,
	"password_hash": true,
	"token":         true,
	"jwt_secret":    true,
	"authorization": true,
}

// ReplaceAttr is a slog.HandlerOptions.ReplaceAttr hook. It blanks attributes
// named after secrets and runs error values through Error.
func ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, RedactionPlaceholder)
	}
	if a.Key != "error" {
		return a
	}

	switch v := a.Value.Any().(type) {
	case error:
		return slog.String(a.Key, Error(v))
	case string:
		return slog.String(a.Key, String(v))
	default:
		return a
	}
}
