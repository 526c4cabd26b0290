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

// TagBackend serves tag records.
type TagBackend interface {
	ListTags(ctx context.Context, q models.Query) (*models.Page[models.Tag], error)
	GetTag(ctx context.Context, id string) (*models.Tag, error)
	CreateTag(ctx context.Context, in models.TagInput) (*models.Tag, error)
	UpdateTag(ctx context.Context, id string, in models.TagInput) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

// Tags groups the tag handlers.
type Tags struct {
	backend TagBackend
}

// NewTags creates the tag handler group.
func NewTags(backend TagBackend) *Tags {
	return &Tags{backend: backend}
}

func (h *Tags) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.backend.ListTags(r.Context(), models.QueryFromValues(r.URL.Query()))
	if err != nil {
		fail(w, r, "list tags", err)
		return
	}
	writeOK(w, page)
}

func (h *Tags) Get(w http.ResponseWriter, r *http.Request) {
	tag, err := h.backend.GetTag(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, "get tag", err)
		return
	}
	if tag == nil {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeOK(w, tag)
}

func (h *Tags) Create(w http.ResponseWriter, r *http.Request) {
	var in models.TagInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := validateName(in.NameVI, in.NameEN); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	tag, err := h.backend.CreateTag(r.Context(), in)
	if err != nil {
		fail(w, r, "create tag", err)
		return
	}
	writeJSON(w, http.StatusCreated, "", tag)
}

// Update renames a tag. Empty names are left unchanged.
func (h *Tags) Update(w http.ResponseWriter, r *http.Request) {
	var in models.TagInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	var vi, en *string
	if in.NameVI != "" {
		vi = &in.NameVI
	}
	if in.NameEN != "" {
		en = &in.NameEN
	}
	if msg := firstError(validateOptionalName("Vietnamese name", vi), validateOptionalName("English name", en)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	tag, err := h.backend.UpdateTag(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, "update tag", err)
		return
	}
	writeOK(w, tag)
}

func (h *Tags) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, "delete tag", err)
		return
	}
	writeOK(w, nil)
}
