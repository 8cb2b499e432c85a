package handler

import (
	"context"
	"errors"
	"net/http"

	"stockroom/internal/model"

	"github.com/rs/zerolog"
)

// Authenticator checks credentials and resolves session users.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	User(ctx context.Context, id string) (*model.User, error)
}

// Sessions tracks the signed-in user across requests.
type Sessions interface {
	Start(w http.ResponseWriter, r *http.Request, userID string) error
	UserID(r *http.Request) (string, bool)
	End(w http.ResponseWriter, r *http.Request) error
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool           `json:"success"`
	User    model.UserView `json:"user"`
}

type statusResponse struct {
	Authenticated bool            `json:"authenticated"`
	User          *model.UserView `json:"user,omitempty"`
}

// AuthHandler handles login, logout and session status.
type AuthHandler struct {
	auth     Authenticator
	sessions Sessions
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth Authenticator, sessions Sessions, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidLogin) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials", h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.sessions.Start(w, r, user.ID); err != nil {
		h.logger.Error().Err(err).Msg("failed to save session")
		writeError(w, http.StatusInternalServerError, "failed to start session", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, User: user.View()})
}

// Logout handles POST /api/auth/logout requests.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(w, r); err != nil {
		h.logger.Warn().Err(err).Msg("failed to clear session")
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Status handles GET /api/auth/status requests.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessions.UserID(r)
	if !ok {
		writeJSON(w, http.StatusOK, statusResponse{})
		return
	}

	user, err := h.auth.User(r.Context(), id)
	if err != nil {
		h.logger.Debug().Err(err).Str("user_id", id).Msg("session user no longer resolvable")
		writeJSON(w, http.StatusOK, statusResponse{})
		return
	}

	view := user.View()
	writeJSON(w, http.StatusOK, statusResponse{Authenticated: true, User: &view})
}
