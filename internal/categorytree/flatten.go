// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package categorytree

import (
	"cmp"
	"fmt"
	"slices"
)

// OrderItem is one row of a reorder batch: where a single category sits
// after the change.
type OrderItem struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id"`
	Order    int     `json:"order"`
}

// Label carries the display strings of a category.
type Label struct {
	Primary   string
	Secondary string
}

// Flatten lists every node of t in pre-order with its derived parent id.
// The result is the complete payload of a reorder batch.
func Flatten(t Tree) []OrderItem {
	items := make([]OrderItem, 0, t.Len())
	Walk(t, func(n *Node, parentID *string, _ int) {
		items = append(items, OrderItem{ID: n.ID, ParentID: parentID, Order: n.Order})
	})
	return items
}

// Build reconstructs a tree from flat order records.
func Build(items []OrderItem) (Tree, error) {
	return BuildWithLabels(items, nil)
}

// BuildWithLabels reconstructs a tree from flat order records, attaching
// display labels by id. Siblings are sorted by Order (ties keep input order)
// and renumbered 0..n-1, so gaps left by deletions on the server disappear.
// It fails with ErrInvariant on duplicate ids, unknown parents, and parent
// chains that never reach a root.
func BuildWithLabels(items []OrderItem, labels map[string]Label) (Tree, error) {
	known := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			return Tree{}, fmt.Errorf("%w: empty id", ErrInvariant)
		}
		if known[it.ID] {
			return Tree{}, fmt.Errorf("%w: duplicate id %s", ErrInvariant, it.ID)
		}
		known[it.ID] = true
	}

	groups := make(map[string][]OrderItem)
	var rootItems []OrderItem
	for _, it := range items {
		if it.ParentID == nil {
			rootItems = append(rootItems, it)
			continue
		}
		if !known[*it.ParentID] {
			return Tree{}, fmt.Errorf("%w: %s references unknown parent %s", ErrInvariant, it.ID, *it.ParentID)
		}
		groups[*it.ParentID] = append(groups[*it.ParentID], it)
	}

	built := 0
	var build func(group []OrderItem) []*Node
	build = func(group []OrderItem) []*Node {
		if len(group) == 0 {
			return nil
		}
		slices.SortStableFunc(group, func(a, b OrderItem) int { return cmp.Compare(a.Order, b.Order) })
		nodes := make([]*Node, len(group))
		for i, it := range group {
			built++
			l := labels[it.ID]
			nodes[i] = &Node{
				ID:             it.ID,
				LabelPrimary:   l.Primary,
				LabelSecondary: l.Secondary,
				Order:          i,
				Children:       build(groups[it.ID]),
			}
		}
		return nodes
	}
	t := Tree{Roots: build(rootItems)}

	if built != len(items) {
		return Tree{}, fmt.Errorf("%w: %d categories are not reachable from a root (parent cycle)", ErrInvariant, len(items)-built)
	}
	return t, nil
}
