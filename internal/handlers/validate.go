package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for console inputs.
const (
	maxNameLen        = 200
	maxDescriptionLen = 1_000
	maxTitleLen       = 300
	maxExcerptLen     = 1_000
	maxBodyLen        = 100_000
	maxURLLen         = 2_048
	maxUploadBytes    = 10 << 20
)

// allowedImageTypes are the content types accepted by the upload endpoint.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// validateName checks a required bilingual name pair.
func validateName(vi, en string) string {
	if strings.TrimSpace(vi) == "" {
		return "Vietnamese name is required."
	}
	if strings.TrimSpace(en) == "" {
		return "English name is required."
	}
	return firstError(
		validateOptionalName("Vietnamese name", &vi),
		validateOptionalName("English name", &en),
	)
}

// validateOptionalName checks a name that is only validated when present.
func validateOptionalName(label string, name *string) string {
	if name == nil {
		return ""
	}
	if strings.TrimSpace(*name) == "" {
		return label + " cannot be empty."
	}
	if utf8.RuneCountInString(*name) > maxNameLen {
		return label + " is too long (max 200 characters)."
	}
	return ""
}

// validateDescription checks an optional category description.
func validateDescription(desc *string) string {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}

// validateTitle checks an optional post title.
func validateTitle(label string, title *string) string {
	if title == nil {
		return ""
	}
	if strings.TrimSpace(*title) == "" {
		return label + " cannot be empty."
	}
	if utf8.RuneCountInString(*title) > maxTitleLen {
		return label + " is too long (max 300 characters)."
	}
	return ""
}

// validateBody checks optional post content and excerpt fields.
func validateBody(label string, body *string) string {
	if body != nil && utf8.RuneCountInString(*body) > maxBodyLen {
		return label + " is too long (max 100,000 characters)."
	}
	return ""
}

func validateExcerpt(label string, excerpt *string) string {
	if excerpt != nil && utf8.RuneCountInString(*excerpt) > maxExcerptLen {
		return label + " is too long (max 1,000 characters)."
	}
	return ""
}

// validateURL checks an optional link such as a thumbnail or avatar.
func validateURL(label string, u *string) string {
	if u == nil || *u == "" {
		return ""
	}
	if utf8.RuneCountInString(*u) > maxURLLen {
		return label + " is too long."
	}
	if !strings.HasPrefix(*u, "https://") && !strings.HasPrefix(*u, "http://") {
		return label + " must be an http(s) URL."
	}
	return ""
}

// firstError returns the first non-empty validation message.
func firstError(msgs ...string) string {
	for _, m := range msgs {
		if m != "" {
			return m
		}
	}
	return ""
}
