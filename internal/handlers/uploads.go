// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"blogconsole/internal/models"
)

// ImageStore keeps uploaded images and hands back their public URL.
type ImageStore interface {
	PutImage(ctx context.Context, originalName, contentType string, body io.Reader, size int64) (*models.Upload, error)
}

// Uploads handles image uploads for post thumbnails.
type Uploads struct {
	images ImageStore
}

// NewUploads creates the upload handler. images may be nil when object
// storage is not configured; uploads then answer 503.
func NewUploads(images ImageStore) *Uploads {
	return &Uploads{images: images}
}

// Upload stores the multipart "file" field and returns its public URL.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	if h.images == nil {
		writeError(w, http.StatusServiceUnavailable, "Object storage is not configured.")
		return
	}

	// Limit request body to maxUploadBytes + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1024)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed.", contentType))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process file.")
		return
	}

	name := header.Filename
	if filepath.Ext(name) == "" {
		name += ext
	}

	up, err := h.images.PutImage(r.Context(), name, contentType, file, header.Size)
	if err != nil {
		slog.Error("image upload failed", "error", err, "name", header.Filename)
		writeError(w, http.StatusBadGateway, "Failed to upload file.")
		return
	}

	slog.Info("image uploaded", "key", up.Key, "size", up.HumanSize())
	writeJSON(w, http.StatusCreated, "", up)
}
