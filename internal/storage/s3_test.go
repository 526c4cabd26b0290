package storage

import (
	"regexp"
	"testing"
	"time"
)

func TestNew_Unconfigured(t *testing.T) {
	c, err := New("", "us-east-1", "", "", "media", "")
	if err != nil || c != nil {
		t.Errorf("New with no endpoint: got (%v, %v), want (nil, nil)", c, err)
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New("http://localhost:9000", "us-east-1", "key", "secret", "", ""); err == nil {
		t.Error("expected error without bucket")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("http://localhost:9000/", "us-east-1", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := c.FileURL("images/a.png"), "http://localhost:9000/media/images/a.png"; got != want {
		t.Errorf("FileURL: got %q, want %q", got, want)
	}

	cdn, err := New("http://localhost:9000", "us-east-1", "key", "secret", "media", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := cdn.FileURL("images/a.png"), "https://cdn.example.com/images/a.png"; got != want {
		t.Errorf("FileURL with CDN: got %q, want %q", got, want)
	}
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1760600000123)

	tests := []struct {
		name    string
		pattern string
	}{
		{"Ảnh bìa Đà Nẵng.JPG", `^images/1760600000123-[0-9a-f]{8}-anh-bia-da-nang\.jpg$`},
		{`C:\Users\me\photo.png`, `^images/1760600000123-[0-9a-f]{8}-photo\.png$`},
		{"../../etc/passwd", `^images/1760600000123-[0-9a-f]{8}-passwd$`},
		{"!!!.webp", `^images/1760600000123-[0-9a-f]{8}-image\.webp$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectKey(tt.name, now)
			if !regexp.MustCompile(tt.pattern).MatchString(got) {
				t.Errorf("ObjectKey(%q) = %q, want match %s", tt.name, got, tt.pattern)
			}
		})
	}
}

func TestObjectKey_Unique(t *testing.T) {
	now := time.Now()
	if ObjectKey("a.png", now) == ObjectKey("a.png", now) {
		t.Error("keys for the same file at the same instant must differ")
	}
}
