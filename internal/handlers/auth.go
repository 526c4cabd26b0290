// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"blogconsole/internal/auth"
	"blogconsole/internal/middleware"
	"blogconsole/internal/models"
	"blogconsole/internal/session"
)

// SessionManager creates and destroys console sessions.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions SessionManager
	verifier auth.TokenVerifier
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions SessionManager, verifier auth.TokenVerifier) *Auth {
	return &Auth{
		sessions: sessions,
		verifier: verifier,
	}
}

// loginRequest is the body of POST /admin/login.
type loginRequest struct {
	IDToken string `json:"id_token"`
}

// meResponse describes the signed-in administrator.
type meResponse struct {
	User      auth.Identity `json:"user"`
	CSRFToken string        `json:"csrf_token"`
}

// Login exchanges an identity provider token for a console session. Only
// administrators may sign in.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.IDToken = strings.TrimSpace(req.IDToken)
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "id_token is required.")
		return
	}

	id, err := a.verifier.Verify(req.IDToken)
	if err != nil {
		slog.Warn("login token rejected", "error", err, "ip", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}

	if models.Role(id.Role) != models.RoleAdmin {
		slog.Warn("non-admin login refused", "email", id.Email, "role", id.Role)
		writeError(w, http.StatusForbidden, "Administrator access required.")
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		Subject:        id.Subject,
		Email:          id.Email,
		Name:           id.Name,
		Role:           id.Role,
		Token:          req.IDToken,
		TokenExpiresAt: id.ExpiresAt,
	})
	if errors.Is(err, session.ErrTokenExpired) {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}
	if err != nil {
		slog.Error("create session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	slog.Info("admin signed in", "email", id.Email)
	writeOK(w, meResponse{User: id, CSRFToken: middleware.CSRFToken(r)})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("destroy session failed", "error", err)
	}
	writeOK(w, nil)
}

// Me returns the signed-in administrator and the CSRF token the console
// must echo on writes.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeOK(w, meResponse{
		User: auth.Identity{
			Subject: sess.Subject,
			Email:   sess.Email,
			Name:    sess.Name,
			Role:    sess.Role,
		},
		CSRFToken: middleware.CSRFToken(r),
	})
}
