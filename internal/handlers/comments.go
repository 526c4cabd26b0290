// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogconsole/internal/models"
)

// CommentBackend serves comment moderation.
type CommentBackend interface {
	ListComments(ctx context.Context, q models.Query) (*models.Page[models.Comment], error)
	SetCommentStatus(ctx context.Context, id string, status models.CommentStatus) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// Comments groups the comment moderation handlers.
type Comments struct {
	backend CommentBackend
}

// NewComments creates the comment handler group.
func NewComments(backend CommentBackend) *Comments {
	return &Comments{backend: backend}
}

func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	q := models.QueryFromValues(r.URL.Query(), "post_id", "status")
	if s, ok := q.Filters["status"]; ok && !models.CommentStatus(s).Valid() {
		writeError(w, http.StatusBadRequest, "Unknown comment status.")
		return
	}
	page, err := h.backend.ListComments(r.Context(), q)
	if err != nil {
		fail(w, r, "list comments", err)
		return
	}
	writeOK(w, page)
}

// SetStatus approves or hides a comment.
func (h *Comments) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.CommentStatus `json:"status"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown comment status.")
		return
	}
	c, err := h.backend.SetCommentStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		fail(w, r, "moderate comment", err)
		return
	}
	writeOK(w, c)
}

func (h *Comments) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteComment(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, "delete comment", err)
		return
	}
	writeOK(w, nil)
}
