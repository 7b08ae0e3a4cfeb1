package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// HeaderAPIKey is the alternative to a bearer token.
const HeaderAPIKey = "X-API-Key"

// Middleware rejects requests without a valid API key.
type Middleware struct {
	validator *Validator
	logger    *slog.Logger
}

// NewMiddleware creates API key middleware backed by v.
func NewMiddleware(v *Validator) *Middleware {
	return &Middleware{
		validator: v,
		logger:    slog.Default().With("component", "auth"),
	}
}

// Handle wraps next with API key authentication.
func (m *Middleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := m.validator.Validate(extractKey(r))
		if err != nil {
			msg := "invalid API key"
			if errors.Is(err, ErrMissingKey) {
				msg = "missing API key"
			}
			m.logger.WarnContext(r.Context(), msg,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="lpmon"`)
			http.Error(w, msg, http.StatusUnauthorized)
			return
		}

		m.logger.DebugContext(r.Context(), "API key authenticated", "caller", key.Name, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, key.Name)))
	})
}

func extractKey(r *http.Request) string {
	if v := r.Header.Get("Authorization"); v != "" {
		if token, ok := strings.CutPrefix(v, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(HeaderAPIKey))
}

type callerKey struct{}

// Caller returns the name of the authenticated key in ctx.
func Caller(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(callerKey{}).(string)
	return name, ok
}
