package model

// AuthContext carries the identity of an authenticated request.
// It is resolved from the session cookie by the auth middleware.
type AuthContext struct {
	SessionID string
	UserID    string
	Username  string
	Email     string
}
