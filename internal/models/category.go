// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"
)

// Category is a blog category as returned by the remote API. The tree
// endpoint nests Children; list endpoints leave it empty.
type Category struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	NameVI      string     `json:"name_vi"`
	NameEN      string     `json:"name_en"`
	Description string     `json:"description,omitempty"`
	Order       int        `json:"order"`
	ParentID    *string    `json:"parent_id,omitempty"`
	Children    []Category `json:"children,omitempty"`
	Creator     *UserBrief `json:"creator,omitempty"`
	Modifier    *UserBrief `json:"modifier,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateCategoryInput is the body of a category create call.
type CreateCategoryInput struct {
	NameVI      string  `json:"name_vi"`
	NameEN      string  `json:"name_en"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parent_id,omitempty"`
}

// UpdateCategoryInput is the body of a category PATCH call. A nil field is
// left unchanged. A parent_id key that is present, even as null, moves the
// category; ParentSet records that presence.
type UpdateCategoryInput struct {
	NameVI      *string `json:"name_vi,omitempty"`
	NameEN      *string `json:"name_en,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parent_id"`
	ParentSet   bool    `json:"-"`
}

// MovesParent reports whether the update changes the parent. A nil
// ParentID with ParentSet moves the category to the root.
func (in UpdateCategoryInput) MovesParent() bool {
	return in.ParentSet || in.ParentID != nil
}

// UnmarshalJSON sets ParentSet when the body carries a parent_id key.
func (in *UpdateCategoryInput) UnmarshalJSON(b []byte) error {
	type plain UpdateCategoryInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	_, p.ParentSet = keys["parent_id"]
	*in = UpdateCategoryInput(p)
	return nil
}

// MarshalJSON omits parent_id unless the update moves the category, so a
// rename never reaches the server as a move to the root.
func (in UpdateCategoryInput) MarshalJSON() ([]byte, error) {
	if in.MovesParent() {
		type plain UpdateCategoryInput
		return json.Marshal(plain(in))
	}
	return json.Marshal(struct {
		NameVI      *string `json:"name_vi,omitempty"`
		NameEN      *string `json:"name_en,omitempty"`
		Description *string `json:"description,omitempty"`
	}{in.NameVI, in.NameEN, in.Description})
}

// BulkUpdateOrderResult is the response of the bulk reorder endpoint.
type BulkUpdateOrderResult struct {
	Updated int `json:"updated"`
}

// UserBrief identifies the creator or last modifier of a record.
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
