// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// Valid reports whether s is a known moderation state.
func (s CommentStatus) Valid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusRejected:
		return true
	}
	return false
}

// Comment is a reader comment awaiting or past moderation.
type Comment struct {
	ID               string        `json:"id"`
	Content          string        `json:"content"`
	AuthorName       string        `json:"authorName"`
	PostTitle        string        `json:"postTitle"`
	ParentAuthorName string        `json:"parentAuthorName,omitempty"`
	Status           CommentStatus `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
}
