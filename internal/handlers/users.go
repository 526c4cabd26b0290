// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogconsole/internal/middleware"
	"blogconsole/internal/models"
)

// UserBackend serves platform user records.
type UserBackend interface {
	ListUsers(ctx context.Context, q models.Query) (*models.Page[models.User], error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in models.UpdateUserInput) (*models.User, error)
	SyncUsers(ctx context.Context) (*models.SyncResult, error)
}

// Users groups the user administration handlers.
type Users struct {
	backend UserBackend
}

// NewUsers creates the user handler group.
func NewUsers(backend UserBackend) *Users {
	return &Users{backend: backend}
}

// List returns one page of users, filterable by role and verification.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	q := models.QueryFromValues(r.URL.Query(), "role", "is_verified")
	if role, ok := q.Filters["role"]; ok && !models.Role(role).Valid() {
		writeError(w, http.StatusBadRequest, "Unknown role.")
		return
	}
	page, err := h.backend.ListUsers(r.Context(), q)
	if err != nil {
		fail(w, r, "list users", err)
		return
	}
	writeOK(w, page)
}

func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.backend.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, "get user", err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeOK(w, u)
}

// Update changes a user's name, avatar or role. Administrators cannot
// demote themselves.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in models.UpdateUserInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if in.Role != nil && !in.Role.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown role.")
		return
	}
	if msg := firstError(validateOptionalName("Name", in.Name), validateURL("Avatar", in.Avatar)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.Subject == id &&
		in.Role != nil && *in.Role != models.RoleAdmin {
		writeError(w, http.StatusUnprocessableEntity, "You cannot remove your own administrator role.")
		return
	}

	u, err := h.backend.UpdateUser(r.Context(), id, in)
	if err != nil {
		fail(w, r, "update user", err)
		return
	}
	writeOK(w, u)
}

// Sync imports accounts from the identity provider.
func (h *Users) Sync(w http.ResponseWriter, r *http.Request) {
	res, err := h.backend.SyncUsers(r.Context())
	if err != nil {
		fail(w, r, "sync users", err)
		return
	}
	slog.Info("users synced from identity provider", "synced", res.Synced, "total", res.Total, "errors", len(res.Errors))
	writeOK(w, res)
}
