package models

import "testing"

func TestUploadIsImage(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"image/webp", true},
		{"application/pdf", false},
		{"text/html", false},
		{"", false},
		{"image", false},
		{"IMAGE/PNG", false},
	}

	for _, tt := range tests {
		u := &Upload{ContentType: tt.contentType}
		if got := u.IsImage(); got != tt.want {
			t.Errorf("Upload{ContentType: %q}.IsImage() = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

// TestUploadHumanSize verifies the human-readable file size formatting
// across byte, kilobyte, and megabyte ranges.
func TestUploadHumanSize(t *testing.T) {
	tests := []struct {
		name      string
		sizeBytes int64
		want      string
	}{
		{name: "zero bytes", sizeBytes: 0, want: "0 B"},
		{name: "1023 bytes", sizeBytes: 1023, want: "1023 B"},
		{name: "exactly 1 KB", sizeBytes: 1024, want: "1 KB"},
		{name: "512 KB", sizeBytes: 524288, want: "512 KB"},
		{name: "exactly 1 MB", sizeBytes: 1048576, want: "1.0 MB"},
		{name: "upload limit", sizeBytes: 10 << 20, want: "10.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &Upload{SizeBytes: tt.sizeBytes}
			if got := u.HumanSize(); got != tt.want {
				t.Errorf("Upload{SizeBytes: %d}.HumanSize() = %q, want %q", tt.sizeBytes, got, tt.want)
			}
		})
	}
}
