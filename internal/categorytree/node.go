// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package categorytree models the hierarchical category tree edited by the
// admin console: immutable tree snapshots, the drag-and-drop move algorithm,
// flattening into order records, and the optimistic controller that persists
// a new ordering and rolls back when the backend refuses it.
//
// A node never stores its parent id. The nesting of Children is the only
// structural source of truth; parent ids are derived while flattening.
package categorytree

import (
	"fmt"
	"slices"
)

// Node is one category in a tree snapshot. Nodes reachable from a Tree must
// be treated as read-only: Move builds new nodes along the changed paths and
// shares everything else with the previous snapshot.
type Node struct {
	ID             string  `json:"id"`
	LabelPrimary   string  `json:"label_primary"`
	LabelSecondary string  `json:"label_secondary"`
	Order          int     `json:"order"`
	Children       []*Node `json:"children,omitempty"`
}

// Tree is an immutable snapshot of the whole category hierarchy.
type Tree struct {
	Roots []*Node `json:"roots"`
}

// Len returns the number of nodes in the tree.
func (t Tree) Len() int {
	n := 0
	Walk(t, func(*Node, *string, int) { n++ })
	return n
}

// Walk visits every node depth-first, parents before children, siblings in
// slice order. parentID is nil for root nodes.
func Walk(t Tree, fn func(n *Node, parentID *string, depth int)) {
	walk(t.Roots, nil, 0, fn)
}

func walk(nodes []*Node, parentID *string, depth int, fn func(*Node, *string, int)) {
	for _, n := range nodes {
		fn(n, parentID, depth)
		id := n.ID
		walk(n.Children, &id, depth+1, fn)
	}
}

// Find returns the node with the given id.
func Find(t Tree, id string) (*Node, bool) {
	var found *Node
	Walk(t, func(n *Node, _ *string, _ int) {
		if found == nil && n.ID == id {
			found = n
		}
	})
	return found, found != nil
}

// FindPath returns the ids from the root down to id, inclusive.
func FindPath(t Tree, id string) ([]string, error) {
	var path []string
	if findPath(t.Roots, id, &path) {
		return path, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func findPath(nodes []*Node, id string, path *[]string) bool {
	for _, n := range nodes {
		*path = append(*path, n.ID)
		if n.ID == id || findPath(n.Children, id, path) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

// IsDescendant reports whether id is ancestorID itself or lies somewhere in
// its subtree.
func IsDescendant(t Tree, ancestorID, id string) bool {
	path, err := FindPath(t, id)
	if err != nil {
		return false
	}
	return slices.Contains(path, ancestorID)
}

// ParentOptions returns the tree without excludeID and its subtree. Edit
// forms offer it as the list of valid parents, so a category can never be
// moved under itself. Unaffected branches are shared with t.
func ParentOptions(t Tree, excludeID string) Tree {
	return Tree{Roots: prune(t.Roots, excludeID)}
}

func prune(nodes []*Node, id string) []*Node {
	var out []*Node
	changed, removed := false, false
	for _, n := range nodes {
		if n.ID == id {
			changed, removed = true, true
			continue
		}
		children := prune(n.Children, id)
		if len(children) != len(n.Children) || !sameNodes(children, n.Children) {
			c := *n
			c.Children = children
			out = append(out, &c)
			changed = true
			continue
		}
		out = append(out, n)
	}
	if !changed {
		return nodes
	}
	if removed {
		return renumber(out)
	}
	return out
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Validate checks that t is well-formed: every id appears once (which also
// rules out cycles in the child links) and every sibling group is ordered
// 0..n-1 in slice order. Parent linkage cannot disagree with Children
// because it is never stored.
func Validate(t Tree) error {
	seen := make(map[string]bool)
	return validate(t.Roots, "", seen)
}

func validate(nodes []*Node, parent string, seen map[string]bool) error {
	for i, n := range nodes {
		if n == nil {
			return fmt.Errorf("%w: nil node under %q", ErrInvariant, parent)
		}
		if n.ID == "" {
			return fmt.Errorf("%w: empty id under %q", ErrInvariant, parent)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: node %s appears more than once", ErrInvariant, n.ID)
		}
		seen[n.ID] = true
		if n.Order != i {
			return fmt.Errorf("%w: node %s has order %d at position %d", ErrInvariant, n.ID, n.Order, i)
		}
		if err := validate(n.Children, n.ID, seen); err != nil {
			return err
		}
	}
	return nil
}
