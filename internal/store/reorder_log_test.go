package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"blogconsole/internal/categorytree"
	"blogconsole/internal/models"
)

func TestEntryFromEvent(t *testing.T) {
	ev := categorytree.Event{
		Kind:     categorytree.EventRejected,
		Actor:    "admin@example.com",
		DragID:   "a",
		DropID:   "b",
		Position: categorytree.AfterSibling,
		Items:    4,
		Err:      errors.New("boom"),
	}
	e := EntryFromEvent(ev)
	want := models.ReorderLogEntry{
		ActorEmail: "admin@example.com",
		DragID:     "a",
		DropID:     "b",
		Position:   "after",
		ItemCount:  4,
		Outcome:    "rejected",
		Error:      "boom",
	}
	if e != want {
		t.Errorf("EntryFromEvent: got %+v, want %+v", e, want)
	}
}

func TestReorderLogRecordAndRecent(t *testing.T) {
	db := testDB(t)
	s := NewReorderLogStore(db)
	ctx := context.Background()

	dragID := uuid.NewString()
	t.Cleanup(func() {
		db.Exec("DELETE FROM reorder_log WHERE drag_id = $1", dragID)
	})

	s.Record(ctx, models.ReorderLogEntry{ActorEmail: "a@example.com", DragID: dragID, DropID: "x", Position: "child", ItemCount: 3, Outcome: "confirmed"})
	s.Notifier()(categorytree.Event{Kind: categorytree.EventInvalid, DragID: dragID, DropID: dragID, Position: categorytree.AsChild, Err: categorytree.ErrInvalidMove})

	entries, err := s.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	var outcomes []string
	for _, e := range entries {
		if e.DragID == dragID {
			outcomes = append(outcomes, e.Outcome)
		}
	}
	if len(outcomes) != 2 {
		t.Fatalf("entries for drag %s: got %d, want 2", dragID, len(outcomes))
	}
}

func TestReorderLogRecordRejectsUnknownOutcome(t *testing.T) {
	db := testDB(t)
	s := NewReorderLogStore(db)

	dragID := uuid.NewString()
	t.Cleanup(func() {
		db.Exec("DELETE FROM reorder_log WHERE drag_id = $1", dragID)
	})

	// Record swallows the constraint violation.
	s.Record(context.Background(), models.ReorderLogEntry{DragID: dragID, DropID: "x", Position: "child", Outcome: "bogus"})

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM reorder_log WHERE drag_id = $1", dragID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("rows for bogus outcome: got %d, want 0", count)
	}
}
