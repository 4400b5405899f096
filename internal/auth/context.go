package auth

import (
	"context"

	"github.com/finintel/finintel/internal/model"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// ContextWithAuth returns a context carrying the authenticated identity.
// The auth middleware installs it after resolving the session cookie.
func ContextWithAuth(ctx context.Context, auth *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, auth)
}

// AuthFromContext returns the authenticated identity, or nil when the
// request carried no valid session.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	auth, _ := ctx.Value(authContextKey).(*model.AuthContext)
	return auth
}

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request is anonymous.
func UserIDFromContext(ctx context.Context) string {
	if auth := AuthFromContext(ctx); auth != nil {
		return auth.UserID
	}
	return ""
}
