package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "inventory-session"
	userIDKey   = "userId"
)

// SessionManager stores the signed-in user ID in a signed cookie.
type SessionManager struct {
	store *sessions.CookieStore
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	MaxAge int // seconds
	Secure bool
}

// NewSessionManager creates a SessionManager signing cookies with secret.
func NewSessionManager(secret []byte, opts SessionOptions) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// Start records userID in a fresh session cookie.
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, userID string) error {
	// A cookie that fails to decode still yields a usable new session.
	session, _ := m.store.Get(r, sessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// UserID returns the user ID carried by the request's session cookie.
func (m *SessionManager) UserID(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	id, ok := session.Values[userIDKey].(string)
	return id, ok && id != ""
}

// End expires the session cookie.
func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

type contextKey struct{}

// WithUserID returns a context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserIDFromContext returns the user ID set by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok
}
