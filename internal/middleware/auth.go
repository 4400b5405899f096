package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finintel/finintel/internal/auth"
	"github.com/finintel/finintel/internal/cache"
)

// AuthConfig holds configuration for the session auth middleware.
type AuthConfig struct {
	Logger     *slog.Logger
	Cache      *cache.Cache
	CookieName string
	SessionTTL time.Duration
}

// Auth returns a middleware that authenticates requests via the
// session cookie. The session token is looked up in Redis; a hit
// refreshes the session TTL (sliding expiry) and injects the auth
// context into the request.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_session"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			authCtx, err := cfg.Cache.GetSession(r.Context(), cookie.Value)
			if err != nil {
				reason := "session_lookup_error"
				if errors.Is(err, cache.ErrSessionNotFound) {
					reason = "invalid_session"
				}
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Sliding expiry: activity keeps the session alive.
			if cfg.SessionTTL > 0 {
				_ = cfg.Cache.RefreshSession(r.Context(), cookie.Value, cfg.SessionTTL)
			}

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Authentication required"}}`))
}
