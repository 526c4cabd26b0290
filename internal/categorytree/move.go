// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package categorytree

import (
	"fmt"
	"slices"
)

// DropPosition says where a dragged node lands relative to the drop node.
type DropPosition int

const (
	// AsChild makes the dragged node the first child of the drop node.
	AsChild DropPosition = iota
	// BeforeSibling inserts the dragged node right before the drop node.
	BeforeSibling
	// AfterSibling inserts the dragged node right after the drop node.
	AfterSibling
)

var dropPositionNames = map[DropPosition]string{
	AsChild:       "child",
	BeforeSibling: "before",
	AfterSibling:  "after",
}

// String returns the wire name of the position.
func (p DropPosition) String() string {
	if s, ok := dropPositionNames[p]; ok {
		return s
	}
	return fmt.Sprintf("DropPosition(%d)", int(p))
}

// ParseDropPosition parses "child", "before" or "after".
func ParseDropPosition(s string) (DropPosition, error) {
	for p, name := range dropPositionNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown drop position %q", ErrInvalidMove, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p DropPosition) MarshalText() ([]byte, error) {
	if _, ok := dropPositionNames[p]; !ok {
		return nil, fmt.Errorf("%w: unknown drop position %d", ErrInvalidMove, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *DropPosition) UnmarshalText(b []byte) error {
	v, err := ParseDropPosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// DropEvent is the raw outcome of a drag gesture as reported by the tree
// widget in the browser.
type DropEvent struct {
	// DropToGap is false when the pointer was released on the node itself.
	DropToGap bool `json:"drop_to_gap"`
	// Expanded and HasChildren describe the drop node at release time.
	Expanded    bool `json:"expanded"`
	HasChildren bool `json:"has_children"`
	// RelativePosition is -1 above the drop node's row, 0 on it, 1 below it.
	RelativePosition int `json:"relative_position"`
}

// ResolveDrop maps a drop gesture to a DropPosition. Releasing just below an
// expanded node that already has children nests the dragged node instead of
// placing it after the drop node at the drop node's level.
func ResolveDrop(ev DropEvent) DropPosition {
	switch {
	case !ev.DropToGap:
		return AsChild
	case ev.Expanded && ev.HasChildren && ev.RelativePosition == 1:
		return AsChild
	case ev.RelativePosition < 0:
		return BeforeSibling
	default:
		return AfterSibling
	}
}

// Move returns a new tree in which dragID (with its whole subtree) has been
// relocated relative to dropID. Sibling orders of the source and destination
// groups are renumbered 0..n-1. t itself is never modified; subtrees off the
// changed paths are shared with the result.
func Move(t Tree, dragID, dropID string, pos DropPosition) (Tree, error) {
	if _, ok := dropPositionNames[pos]; !ok {
		return t, fmt.Errorf("%w: unknown drop position %d", ErrInvalidMove, int(pos))
	}
	dragPath, err := FindPath(t, dragID)
	if err != nil {
		return t, fmt.Errorf("%w: drag node %s not found", ErrInvalidMove, dragID)
	}
	if _, err := FindPath(t, dropID); err != nil {
		return t, fmt.Errorf("%w: drop node %s not found", ErrInvalidMove, dropID)
	}

	// Detach the dragged subtree from its current sibling group.
	var dragged *Node
	roots := updateAt(t.Roots, dragPath[:len(dragPath)-1], func(siblings []*Node) []*Node {
		i := indexOf(siblings, dragID)
		dragged = siblings[i]
		return renumber(slices.Delete(slices.Clone(siblings), i, i+1))
	})
	detached := Tree{Roots: roots}

	// If the drop node went away with the dragged subtree, the move would
	// put a node inside itself.
	dropPath, err := FindPath(detached, dropID)
	if err != nil {
		return t, fmt.Errorf("%w: cannot drop %s onto itself or its descendant %s", ErrInvalidMove, dragID, dropID)
	}

	switch pos {
	case AsChild:
		roots = updateAt(roots, dropPath, func(children []*Node) []*Node {
			return renumber(slices.Insert(slices.Clone(children), 0, dragged))
		})
	default:
		roots = updateAt(roots, dropPath[:len(dropPath)-1], func(siblings []*Node) []*Node {
			i := indexOf(siblings, dropID)
			if pos == AfterSibling {
				i++
			}
			return renumber(slices.Insert(slices.Clone(siblings), i, dragged))
		})
	}
	return Tree{Roots: roots}, nil
}

// updateAt copies the nodes along path and replaces the children of the last
// one (or the roots, when path is empty) with fn's result.
func updateAt(nodes []*Node, path []string, fn func([]*Node) []*Node) []*Node {
	if len(path) == 0 {
		return fn(nodes)
	}
	i := indexOf(nodes, path[0])
	c := *nodes[i]
	c.Children = updateAt(c.Children, path[1:], fn)
	out := slices.Clone(nodes)
	out[i] = &c
	return out
}

func indexOf(nodes []*Node, id string) int {
	return slices.IndexFunc(nodes, func(n *Node) bool { return n.ID == id })
}

// renumber assigns Order 0..n-1 by position, copying only nodes whose order
// changes.
func renumber(nodes []*Node) []*Node {
	for i, n := range nodes {
		if n.Order != i {
			c := *n
			c.Order = i
			nodes[i] = &c
		}
	}
	return nodes
}
