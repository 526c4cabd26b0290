// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// TagBrief and CategoryBrief are the embedded summaries on a post.
type TagBrief struct {
	ID     string `json:"id"`
	NameVI string `json:"name_vi"`
	NameEN string `json:"name_en"`
}

type CategoryBrief struct {
	ID     string `json:"id"`
	NameVI string `json:"name_vi"`
	NameEN string `json:"name_en"`
}

// Post is a bilingual blog post.
type Post struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	TitleVI     string         `json:"title_vi"`
	TitleEN     string         `json:"title_en"`
	ExcerptVI   string         `json:"excerpt_vi,omitempty"`
	ExcerptEN   string         `json:"excerpt_en,omitempty"`
	ContentVI   string         `json:"content_vi"`
	ContentEN   string         `json:"content_en"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Status      PostStatus     `json:"status"`
	ViewCount   int            `json:"view_count"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CategoryID  *string        `json:"category_id,omitempty"`
	Category    *CategoryBrief `json:"category,omitempty"`
	Tags        []TagBrief     `json:"tags,omitempty"`
	Creator     *UserBrief     `json:"creator,omitempty"`
	Modifier    *UserBrief     `json:"modifier,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// PostInput is the body of post create and update calls. Create requires
// titles, contents and a category; update sends only what changed.
type PostInput struct {
	TitleVI    *string     `json:"title_vi,omitempty"`
	TitleEN    *string     `json:"title_en,omitempty"`
	ExcerptVI  *string     `json:"excerpt_vi,omitempty"`
	ExcerptEN  *string     `json:"excerpt_en,omitempty"`
	ContentVI  *string     `json:"content_vi,omitempty"`
	ContentEN  *string     `json:"content_en,omitempty"`
	Thumbnail  *string     `json:"thumbnail,omitempty"`
	Status     *PostStatus `json:"status,omitempty"`
	CategoryID *string     `json:"category_id,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
}
