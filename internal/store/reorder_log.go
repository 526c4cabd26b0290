// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// reorder_log.go records category reorder attempts in the database for
// audit and debugging purposes. Each entry captures who dragged what where,
// and whether the server accepted it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"blogconsole/internal/categorytree"
	"blogconsole/internal/models"
)

// recordTimeout bounds a single audit insert issued from a notifier.
const recordTimeout = 5 * time.Second

// ReorderLogStore handles reorder audit log operations.
type ReorderLogStore struct {
	db *sql.DB
}

// NewReorderLogStore creates a new ReorderLogStore.
func NewReorderLogStore(db *sql.DB) *ReorderLogStore {
	return &ReorderLogStore{db: db}
}

// Record stores one reorder attempt. Failures are logged, never returned.
func (s *ReorderLogStore) Record(ctx context.Context, e models.ReorderLogEntry) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reorder_log (id, actor_email, drag_id, drop_id, position, item_count, outcome, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, e.ID, e.ActorEmail, e.DragID, e.DropID, e.Position, e.ItemCount, e.Outcome, e.Error)
	if err != nil {
		slog.Warn("failed to record reorder",
			"drag", e.DragID,
			"drop", e.DropID,
			"outcome", e.Outcome,
			"error", err,
		)
		return
	}
	slog.Debug("reorder recorded", "drag", e.DragID, "drop", e.DropID, "outcome", e.Outcome)
}

// Notifier returns a controller notifier that records every reorder event.
func (s *ReorderLogStore) Notifier() func(categorytree.Event) {
	return func(ev categorytree.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		s.Record(ctx, EntryFromEvent(ev))
	}
}

// EntryFromEvent converts a controller event into a log entry.
func EntryFromEvent(ev categorytree.Event) models.ReorderLogEntry {
	e := models.ReorderLogEntry{
		ActorEmail: ev.Actor,
		DragID:     ev.DragID,
		DropID:     ev.DropID,
		Position:   ev.Position.String(),
		ItemCount:  ev.Items,
		Outcome:    string(ev.Kind),
	}
	if ev.Err != nil {
		e.Error = ev.Err.Error()
	}
	return e
}

// Recent returns the most recent reorder attempts, newest first.
func (s *ReorderLogStore) Recent(ctx context.Context, limit int) ([]models.ReorderLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, actor_email, drag_id, drop_id, position, item_count, outcome, error, created_at
		FROM reorder_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reorder log: %w", err)
	}
	defer rows.Close()

	entries := []models.ReorderLogEntry{}
	for rows.Next() {
		var e models.ReorderLogEntry
		err := rows.Scan(&e.ID, &e.ActorEmail, &e.DragID, &e.DropID, &e.Position,
			&e.ItemCount, &e.Outcome, &e.Error, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan reorder log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
