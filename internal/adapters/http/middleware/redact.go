package middleware

import (
	"log/slog"
	"net/http"
	"strings"
)

// sensitiveHeaders are request header names (lowercase) whose values are
// masked in debug logs. The masq handler in platform/logging redacts the
// same names as a second layer.
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

const redactedValue = "[REDACTED]"

// RedactHeaders converts request headers into slog attributes, masking the
// values of credential-bearing headers. Multi-valued headers are joined with
// a comma.
func RedactHeaders(h http.Header) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(h))
	for name, values := range h {
		value := strings.Join(values, ",")
		if sensitiveHeaders[strings.ToLower(name)] {
			value = redactedValue
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
