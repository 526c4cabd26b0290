// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package categorytree

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMove_DropOnSiblingNestsAsFirstChild(t *testing.T) {
	tr := tree(node("A", node("B"), node("C")))

	got, err := Move(tr, "C", "B", AsChild)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if s := shape(got); s != "A(B(C))" {
		t.Errorf("shape: got %q, want %q", s, "A(B(C))")
	}
	b := got.Roots[0].Children[0]
	if b.Order != 0 {
		t.Errorf("B order: got %d, want 0", b.Order)
	}
	if b.Children[0].Order != 0 {
		t.Errorf("C order: got %d, want 0", b.Children[0].Order)
	}
}

func TestMove_AfterLastRoot(t *testing.T) {
	tr := tree(node("A"), node("B"), node("C"))

	got, err := Move(tr, "A", "C", AfterSibling)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := []OrderItem{
		{ID: "B", Order: 0},
		{ID: "C", Order: 1},
		{ID: "A", Order: 2},
	}
	if diff := cmp.Diff(want, Flatten(got)); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestMove_Positions(t *testing.T) {
	tests := []struct {
		name   string
		drag   string
		drop   string
		pos    DropPosition
		want   string
	}{
		{"before first root", "tech", "news", BeforeSibling, "tech,news(world(europe,asia),local),sport(football)"},
		{"after middle root", "news", "sport", AfterSibling, "sport(football),news(world(europe,asia),local),tech"},
		{"child goes first", "tech", "world", AsChild, "news(world(tech,europe,asia),local),sport(football)"},
		{"leaf into leaf", "football", "tech", AsChild, "news(world(europe,asia),local),sport,tech(football)"},
		{"across parents before", "football", "asia", BeforeSibling, "news(world(europe,football,asia),local),sport,tech"},
		{"up to root level", "asia", "sport", AfterSibling, "news(world(europe),local),sport(football),asia,tech"},
		{"subtree moves whole", "world", "football", AfterSibling, "news(local),sport(football,world(europe,asia)),tech"},
		{"within same group", "europe", "asia", AfterSibling, "news(world(asia,europe),local),sport(football),tech"},
		{"same place is a no-op", "local", "world", AfterSibling, "news(world(europe,asia),local),sport(football),tech"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sampleTree()
			got, err := Move(tr, tt.drag, tt.drop, tt.pos)
			if err != nil {
				t.Fatalf("Move: %v", err)
			}
			if s := shape(got); s != tt.want {
				t.Errorf("shape:\n got  %q\n want %q", s, tt.want)
			}
			if err := Validate(got); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestMove_InvalidLeavesInputUntouched(t *testing.T) {
	tests := []struct {
		name string
		drag string
		drop string
		pos  DropPosition
	}{
		{"onto itself", "world", "world", AsChild},
		{"before itself", "world", "world", BeforeSibling},
		{"into own child", "news", "world", AsChild},
		{"after own grandchild", "news", "asia", AfterSibling},
		{"missing drag", "nope", "tech", AsChild},
		{"missing drop", "tech", "nope", AsChild},
		{"unknown position", "tech", "news", DropPosition(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := sampleTree()
			before := Flatten(tr)

			_, err := Move(tr, tt.drag, tt.drop, tt.pos)
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("Move: got %v, want ErrInvalidMove", err)
			}
			if diff := cmp.Diff(before, Flatten(tr)); diff != "" {
				t.Errorf("input changed (-before +after):\n%s", diff)
			}
		})
	}
}

func TestMove_SharesUntouchedSubtrees(t *testing.T) {
	tr := sampleTree()
	got, err := Move(tr, "europe", "asia", AfterSibling)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got.Roots[1] != tr.Roots[1] {
		t.Error("sport subtree was copied")
	}
	if got.Roots[2] != tr.Roots[2] {
		t.Error("tech node was copied")
	}
	if got.Roots[0] == tr.Roots[0] {
		t.Error("news is on the changed path and must be a new node")
	}
	if got.Roots[0].Children[1] != tr.Roots[0].Children[1] {
		t.Error("local node was copied")
	}
}

func TestMove_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 42))
	positions := []DropPosition{AsChild, BeforeSibling, AfterSibling}

	for round := range 300 {
		tr := randomTree(t, r, 1+r.IntN(25))
		all := ids(tr)
		drag := all[r.IntN(len(all))]
		drop := all[r.IntN(len(all))]
		pos := positions[r.IntN(len(positions))]
		before := Flatten(tr)

		got, err := Move(tr, drag, drop, pos)

		if IsDescendant(tr, drag, drop) {
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("round %d: move %s onto descendant %s: got %v, want ErrInvalidMove", round, drag, drop, err)
			}
			if diff := cmp.Diff(before, Flatten(tr)); diff != "" {
				t.Fatalf("round %d: input changed:\n%s", round, diff)
			}
			continue
		}
		if err != nil {
			t.Fatalf("round %d: Move(%s, %s, %v): %v", round, drag, drop, pos, err)
		}
		if err := Validate(got); err != nil {
			t.Fatalf("round %d: result not well-formed: %v", round, err)
		}
		if diff := cmp.Diff(all, ids(got)); diff != "" {
			t.Fatalf("round %d: node set changed (-want +got):\n%s", round, diff)
		}
		if diff := cmp.Diff(before, Flatten(tr)); diff != "" {
			t.Fatalf("round %d: input changed:\n%s", round, diff)
		}
	}
}

func TestResolveDrop(t *testing.T) {
	tests := []struct {
		name string
		ev   DropEvent
		want DropPosition
	}{
		{"on node", DropEvent{DropToGap: false, RelativePosition: 0}, AsChild},
		{"on node ignores relative", DropEvent{DropToGap: false, RelativePosition: -1}, AsChild},
		{"gap above", DropEvent{DropToGap: true, RelativePosition: -1}, BeforeSibling},
		{"gap below", DropEvent{DropToGap: true, RelativePosition: 1}, AfterSibling},
		{"below expanded parent", DropEvent{DropToGap: true, Expanded: true, HasChildren: true, RelativePosition: 1}, AsChild},
		{"below expanded leaf", DropEvent{DropToGap: true, Expanded: true, HasChildren: false, RelativePosition: 1}, AfterSibling},
		{"below collapsed parent", DropEvent{DropToGap: true, Expanded: false, HasChildren: true, RelativePosition: 1}, AfterSibling},
		{"above expanded parent", DropEvent{DropToGap: true, Expanded: true, HasChildren: true, RelativePosition: -1}, BeforeSibling},
	}
	for _, tt := range tests {
		if got := ResolveDrop(tt.ev); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDropPositionText(t *testing.T) {
	var body struct {
		Position DropPosition `json:"position"`
	}
	if err := json.Unmarshal([]byte(`{"position":"before"}`), &body); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if body.Position != BeforeSibling {
		t.Errorf("position: got %v, want before", body.Position)
	}

	out, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"position":"before"}` {
		t.Errorf("Marshal: got %s", out)
	}

	if err := json.Unmarshal([]byte(`{"position":"inside"}`), &body); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("unknown position: got %v, want ErrInvalidMove", err)
	}
}
