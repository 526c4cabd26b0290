// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ReorderLogEntry is one audited drag-and-drop reorder attempt.
type ReorderLogEntry struct {
	ID         string    `json:"id"`
	ActorEmail string    `json:"actor_email"`
	DragID     string    `json:"drag_id"`
	DropID     string    `json:"drop_id"`
	Position   string    `json:"position"`
	ItemCount  int       `json:"item_count"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
