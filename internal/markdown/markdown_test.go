package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading gets an id",
			input:    "# Xin chào",
			contains: []string{"<h1 id=", "Xin chào</h1>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strikethrough",
			input:    "~~old~~",
			contains: []string{"<del>old</del>"},
		},
		{
			name:     "fenced code is highlighted",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "func"},
		},
		{
			name:     "raw html is not passed through",
			input:    "<script>alert(1)</script>\n\ntext",
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output contains %q:\n%s", bad, got)
				}
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	src := "# Title\n\nFirst *para* here\nline two.\n\n```go\ncode()\n```\n\nSecond `x` para."
	got := Excerpt(src, 200)
	want := "First para here line two. Second x para."
	if got != want {
		t.Errorf("Excerpt: got %q, want %q", got, want)
	}
}

func TestExcerpt_Truncates(t *testing.T) {
	src := "Một hai ba bốn năm sáu bảy tám chín mười"
	got := Excerpt(src, 15)
	if utf8.RuneCountInString(got) > 15 {
		t.Errorf("Excerpt too long: %q", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt should end with ellipsis: %q", got)
	}
	if got != "Một hai ba bốn…" {
		t.Errorf("Excerpt: got %q", got)
	}
}

func TestExcerpt_Empty(t *testing.T) {
	if got := Excerpt("", 10); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := Excerpt("abc", 0); got != "" {
		t.Errorf("zero max: got %q, want empty", got)
	}
}
