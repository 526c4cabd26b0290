// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogconsole/internal/markdown"
	"blogconsole/internal/models"
)

// autoExcerptRunes is the length of excerpts derived from post content.
const autoExcerptRunes = 200

// PostBackend serves post records.
type PostBackend interface {
	ListPosts(ctx context.Context, q models.Query) (*models.Page[models.Post], error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Posts groups the post handlers.
type Posts struct {
	backend PostBackend
}

// NewPosts creates the post handler group.
func NewPosts(backend PostBackend) *Posts {
	return &Posts{backend: backend}
}

// List returns one page of posts, filterable by status and category.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := models.QueryFromValues(r.URL.Query(), "status", "category_id")
	if s, ok := q.Filters["status"]; ok && !models.PostStatus(s).Valid() {
		writeError(w, http.StatusBadRequest, "Unknown post status.")
		return
	}
	page, err := h.backend.ListPosts(r.Context(), q)
	if err != nil {
		fail(w, r, "list posts", err)
		return
	}
	writeOK(w, page)
}

// Get returns one post.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.backend.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, "get post", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeOK(w, p)
}

// Create adds a post. Missing excerpts are derived from the content.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validatePostCreate(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if in.Status == nil {
		draft := models.PostStatusDraft
		in.Status = &draft
	}
	fillExcerpts(&in)

	p, err := h.backend.CreatePost(r.Context(), in)
	if err != nil {
		fail(w, r, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, "", p)
}

// Update patches a post.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validatePost(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	fillExcerpts(&in)

	p, err := h.backend.UpdatePost(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, "update post", err)
		return
	}
	writeOK(w, p)
}

// Delete removes a post.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, "delete post", err)
		return
	}
	writeOK(w, nil)
}

// previewRequest is the body of the markdown preview endpoint.
type previewRequest struct {
	Content string `json:"content"`
}

type previewResponse struct {
	HTML    string `json:"html"`
	Excerpt string `json:"excerpt"`
}

// Preview renders post markdown to HTML.
func (h *Posts) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateBody("Content", &req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	html, err := markdown.ToHTML(req.Content)
	if err != nil {
		fail(w, r, "render preview", err)
		return
	}
	writeOK(w, previewResponse{HTML: html, Excerpt: markdown.Excerpt(req.Content, autoExcerptRunes)})
}

// validatePost checks the fields present in a post write.
func validatePost(in models.PostInput) string {
	if in.Status != nil && !in.Status.Valid() {
		return "Unknown post status."
	}
	return firstError(
		validateTitle("Vietnamese title", in.TitleVI),
		validateTitle("English title", in.TitleEN),
		validateExcerpt("Vietnamese excerpt", in.ExcerptVI),
		validateExcerpt("English excerpt", in.ExcerptEN),
		validateBody("Vietnamese content", in.ContentVI),
		validateBody("English content", in.ContentEN),
		validateURL("Thumbnail", in.Thumbnail),
	)
}

// validatePostCreate additionally requires titles, contents and a category.
func validatePostCreate(in models.PostInput) string {
	switch {
	case blank(in.TitleVI):
		return "Vietnamese title is required."
	case blank(in.TitleEN):
		return "English title is required."
	case blank(in.ContentVI):
		return "Vietnamese content is required."
	case blank(in.ContentEN):
		return "English content is required."
	case blank(in.CategoryID):
		return "Category is required."
	}
	return validatePost(in)
}

// fillExcerpts derives an excerpt from content sent without one.
func fillExcerpts(in *models.PostInput) {
	if blank(in.ExcerptVI) && !blank(in.ContentVI) {
		e := markdown.Excerpt(*in.ContentVI, autoExcerptRunes)
		in.ExcerptVI = &e
	}
	if blank(in.ExcerptEN) && !blank(in.ContentEN) {
		e := markdown.Excerpt(*in.ContentEN, autoExcerptRunes)
		in.ExcerptEN = &e
	}
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
