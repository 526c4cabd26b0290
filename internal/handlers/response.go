// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the admin console API.
// Handlers are grouped by concern (auth, categories, posts, ...) and
// receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"blogconsole/internal/apiclient"
	"blogconsole/internal/categorytree"
)

// maxJSONBody caps request bodies decoded by readJSON.
const maxJSONBody = 1 << 20

// envelope is the response body of every console endpoint.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// writeJSON writes data wrapped in the response envelope.
func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	if message == "" {
		message = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// writeOK writes a 200 response carrying data.
func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, "", data)
}

// writeError writes an envelope without data.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, message, nil)
}

// readJSON decodes the request body into v.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// errorStatus maps an operation error to a response status and message.
// Upstream client errors keep their status and message; upstream server
// errors become 502 and unreachable upstreams 503.
func errorStatus(err error) (int, string) {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, categorytree.ErrBusy):
		return http.StatusConflict, "A reorder is already in progress."
	case errors.Is(err, categorytree.ErrInvalidMove):
		return http.StatusUnprocessableEntity, invalidMoveMessage(err)
	case errors.Is(err, categorytree.ErrNotFound), apiclient.IsNotFound(err):
		return http.StatusNotFound, "Not found."
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, apiErr.Message
		}
		return http.StatusBadGateway, apiErr.Message
	case errors.Is(err, categorytree.ErrServerRejected):
		return http.StatusBadGateway, "The server rejected the change."
	case errors.Is(err, categorytree.ErrNetwork):
		return http.StatusServiceUnavailable, "The blog API is unreachable."
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// invalidMoveMessage strips the wrapping context from an invalid move so
// the console sees only the reason.
func invalidMoveMessage(err error) string {
	msg := err.Error()
	if _, reason, ok := strings.Cut(msg, categorytree.ErrInvalidMove.Error()+": "); ok {
		return reason
	}
	return msg
}

// fail logs err when it is unexpected and writes the mapped response.
func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "path", r.URL.Path)
	} else {
		slog.Debug(op+" refused", "error", err, "status", status)
	}
	writeError(w, status, msg)
}
