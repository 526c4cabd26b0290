// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Tag is a bilingual post tag.
type Tag struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	NameVI    string     `json:"name_vi"`
	NameEN    string     `json:"name_en"`
	Creator   *UserBrief `json:"creator,omitempty"`
	Modifier  *UserBrief `json:"modifier,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TagInput is the body of tag create and update calls.
type TagInput struct {
	NameVI string `json:"name_vi,omitempty"`
	NameEN string `json:"name_en,omitempty"`
}
