package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogconsole/internal/models"
)

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fakeImages struct {
	names []string
	types []string
	sizes []int64
}

func (f *fakeImages) PutImage(_ context.Context, name, contentType string, body io.Reader, size int64) (*models.Upload, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	f.names = append(f.names, name)
	f.types = append(f.types, contentType)
	f.sizes = append(f.sizes, int64(len(data)))
	return &models.Upload{Key: "images/k.png", URL: "https://cdn.example.com/images/k.png", ContentType: contentType, SizeBytes: size}, nil
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	fw.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload_Image(t *testing.T) {
	images := &fakeImages{}
	h := NewUploads(images)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "file", "cover", pngHeader))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var up models.Upload
	decodeEnvelope(t, rec, &up)
	if up.URL != "https://cdn.example.com/images/k.png" {
		t.Errorf("url: got %q", up.URL)
	}
	if images.names[0] != "cover.png" {
		t.Errorf("name: got %q, want cover.png", images.names[0])
	}
	if images.types[0] != "image/png" {
		t.Errorf("content type: got %q, want image/png", images.types[0])
	}
	if images.sizes[0] != int64(len(pngHeader)) {
		t.Errorf("uploaded bytes: got %d, want %d (body must be rewound after sniffing)", images.sizes[0], len(pngHeader))
	}
}

func TestUpload_Rejected(t *testing.T) {
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
		want int
	}{
		{"not an image", func(t *testing.T) *http.Request {
			return multipartRequest(t, "file", "notes.txt", []byte("just some text"))
		}, http.StatusBadRequest},
		{"wrong field", func(t *testing.T) *http.Request {
			return multipartRequest(t, "image", "cover.png", pngHeader)
		}, http.StatusBadRequest},
		{"too large", func(t *testing.T) *http.Request {
			big := append(append([]byte{}, pngHeader...), make([]byte, maxUploadBytes+2048)...)
			return multipartRequest(t, "file", "big.png", big)
		}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			images := &fakeImages{}
			rec := httptest.NewRecorder()
			NewUploads(images).Upload(rec, tt.req(t))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
			if len(images.names) != 0 {
				t.Error("rejected file was stored")
			}
		})
	}
}

func TestUpload_NotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	NewUploads(nil).Upload(rec, multipartRequest(t, "file", "cover.png", pngHeader))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", rec.Code)
	}
}
