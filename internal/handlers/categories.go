// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogconsole/internal/categorytree"
	"blogconsole/internal/middleware"
	"blogconsole/internal/models"
)

// Reorder audit listing limits.
const (
	defaultReorderLimit = 50
	maxReorderLimit     = 200
)

// CategoryBackend is where category records live: the remote API client or
// the console's own database.
type CategoryBackend interface {
	ListCategories(ctx context.Context, q models.Query) (*models.Page[models.Category], error)
	CategoryTree(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in models.UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ReorderHistory lists recorded reorder attempts.
type ReorderHistory interface {
	Recent(ctx context.Context, limit int) ([]models.ReorderLogEntry, error)
}

// Categories groups the category tree and category CRUD handlers.
type Categories struct {
	ctrl    *categorytree.Controller
	backend CategoryBackend
	history ReorderHistory
}

// NewCategories creates the category handler group. history may be nil when
// no database is configured.
func NewCategories(ctrl *categorytree.Controller, backend CategoryBackend, history ReorderHistory) *Categories {
	return &Categories{ctrl: ctrl, backend: backend, history: history}
}

// treeResponse is the console's view of the reorder controller.
type treeResponse struct {
	Tree       categorytree.Tree  `json:"tree"`
	State      categorytree.State `json:"state"`
	Updated    int                `json:"updated,omitempty"`
	MessageKey string             `json:"message_key,omitempty"`
}

// moveRequest is a drag-and-drop gesture. Either Position or Drop must be
// set; Position wins when both are.
type moveRequest struct {
	DragID   string                     `json:"drag_id"`
	DropID   string                     `json:"drop_id"`
	Position *categorytree.DropPosition `json:"position"`
	Drop     *categorytree.DropEvent    `json:"drop"`
}

// Tree returns the displayed tree and the controller state. A controller
// that has not loaded yet loads on the first request.
func (h *Categories) Tree(w http.ResponseWriter, r *http.Request) {
	t, state := h.ctrl.Snapshot()
	if state == categorytree.Idle && t.Len() == 0 {
		if _, err := h.ctrl.Load(r.Context()); err != nil && !errors.Is(err, categorytree.ErrBusy) {
			fail(w, r, "load category tree", err)
			return
		}
		t, state = h.ctrl.Snapshot()
	}
	writeOK(w, treeResponse{Tree: t, State: state})
}

// Move applies a drag-and-drop gesture. On a gateway failure the response
// still carries the reloaded tree so the console can redraw it.
func (h *Categories) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.DragID == "" || req.DropID == "" {
		writeError(w, http.StatusBadRequest, "drag_id and drop_id are required.")
		return
	}
	var pos categorytree.DropPosition
	switch {
	case req.Position != nil:
		pos = *req.Position
	case req.Drop != nil:
		pos = categorytree.ResolveDrop(*req.Drop)
	default:
		writeError(w, http.StatusBadRequest, "position or drop is required.")
		return
	}

	ctx := r.Context()
	if sess := middleware.SessionFromCtx(ctx); sess != nil {
		ctx = categorytree.WithActor(ctx, sess.Email)
	}

	res, err := h.ctrl.Move(ctx, req.DragID, req.DropID, pos)
	ev := categorytree.Event{Kind: categorytree.EventConfirmed}
	if err == nil {
		writeOK(w, treeResponse{Tree: res.Tree, State: res.State, Updated: res.Updated, MessageKey: ev.MessageKey()})
		return
	}

	switch {
	case errors.Is(err, categorytree.ErrBusy):
		fail(w, r, "move category", err)
	case categorytree.IsGatewayError(err):
		ev.Kind = categorytree.EventRejected
		status, msg := errorStatus(err)
		if status < http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		slog.Warn("category move rejected", "drag", req.DragID, "drop", req.DropID, "error", err)
		writeJSON(w, status, msg, treeResponse{Tree: res.Tree, State: res.State, MessageKey: ev.MessageKey()})
	default:
		ev.Kind = categorytree.EventInvalid
		status, msg := errorStatus(err)
		writeJSON(w, status, msg, treeResponse{Tree: res.Tree, State: res.State, MessageKey: ev.MessageKey()})
	}
}

// Reload drops the cached tree and fetches it from the server again.
func (h *Categories) Reload(w http.ResponseWriter, r *http.Request) {
	t, err := h.ctrl.Reload(r.Context())
	if err != nil {
		fail(w, r, "reload category tree", err)
		return
	}
	_, state := h.ctrl.Snapshot()
	writeOK(w, treeResponse{Tree: t, State: state})
}

// ParentOptions returns the tree without the category and its subtree,
// i.e. every valid parent for it.
func (h *Categories) ParentOptions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, _ := h.ctrl.Snapshot()
	if _, ok := categorytree.Find(t, id); !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeOK(w, categorytree.ParentOptions(t, id))
}

// Reorders lists the most recent reorder attempts.
func (h *Categories) Reorders(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeOK(w, []models.ReorderLogEntry{})
		return
	}
	limit := defaultReorderLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = min(l, maxReorderLimit)
	}
	entries, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		fail(w, r, "list reorders", err)
		return
	}
	writeOK(w, entries)
}

// List returns one page of categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.backend.ListCategories(r.Context(), models.QueryFromValues(r.URL.Query(), "parent_id"))
	if err != nil {
		fail(w, r, "list categories", err)
		return
	}
	writeOK(w, page)
}

// Get returns one category.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.backend.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, "get category", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeOK(w, c)
}

// Create adds a category at the end of its parent's children.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateCategoryInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if msg := firstError(validateName(in.NameVI, in.NameEN), validateDescription(&in.Description)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.backend.CreateCategory(r.Context(), in)
	if err != nil {
		fail(w, r, "create category", err)
		return
	}
	h.refresh(r.Context())
	writeJSON(w, http.StatusCreated, "", c)
}

// Update patches a category. Moving it under its own subtree is refused
// before the backend is asked.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var in models.UpdateCategoryInput
	if err := readJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	msg := firstError(
		validateOptionalName("Vietnamese name", in.NameVI),
		validateOptionalName("English name", in.NameEN),
		validateDescription(in.Description),
	)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if in.MovesParent() && in.ParentID != nil {
		t, _ := h.ctrl.Snapshot()
		if categorytree.IsDescendant(t, id, *in.ParentID) {
			writeError(w, http.StatusUnprocessableEntity, "A category cannot be moved under itself.")
			return
		}
	}

	c, err := h.backend.UpdateCategory(r.Context(), id, in)
	if err != nil {
		fail(w, r, "update category", err)
		return
	}
	h.refresh(r.Context())
	writeOK(w, c)
}

// Delete removes a category. Its children move to the top level.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, "delete category", err)
		return
	}
	h.refresh(r.Context())
	writeOK(w, nil)
}

// refresh reloads the controller after a category write. A reorder in
// flight will reload the tree itself, so ErrBusy is not an error here.
func (h *Categories) refresh(ctx context.Context) {
	if _, err := h.ctrl.Reload(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, categorytree.ErrBusy) {
		slog.Warn("refresh category tree failed", "error", err)
	}
}
