package api

import (
	"context"
	"net/http"

	"github.com/okian/edutrack/internal/domain/model"
)

// AuthDependencies defines the session operations.
type AuthDependencies interface {
	SessionProvider
	Login(ctx context.Context, email, password string) (model.User, error)
	Logout(ctx context.Context) error
}

// AuthHandler handles login, logout and session requests.
type AuthHandler struct {
	deps AuthDependencies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps AuthDependencies) *AuthHandler {
	return &AuthHandler{deps: deps}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	var req loginRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeDomainError(w, err)
		return
	}
	u, err := h.deps.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// HandleLogout handles POST /logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	const op = "api.logout"
	if !allowMethod(w, r, op, http.MethodPost) {
		return
	}
	if err := h.deps.Logout(r.Context()); err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// HandleSession handles GET /session requests.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.session"
	if !allowMethod(w, r, op, http.MethodGet) {
		return
	}
	u, err := h.deps.CurrentUser(r.Context())
	if err != nil {
		writeDomainError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, u)
}
