package categorytree

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
)

// node builds a node whose children are numbered by position.
func node(id string, children ...*Node) *Node {
	for i, c := range children {
		c.Order = i
	}
	return &Node{ID: id, LabelPrimary: id, Children: children}
}

func tree(roots ...*Node) Tree {
	for i, r := range roots {
		r.Order = i
	}
	return Tree{Roots: roots}
}

func strPtr(s string) *string { return &s }

// shape renders a tree as "A(B,C(D)),E" for compact assertions.
func shape(t Tree) string {
	return shapeOf(t.Roots)
}

func shapeOf(nodes []*Node) string {
	var s string
	for i, n := range nodes {
		if i > 0 {
			s += ","
		}
		s += n.ID
		if len(n.Children) > 0 {
			s += "(" + shapeOf(n.Children) + ")"
		}
	}
	return s
}

func ids(t Tree) []string {
	var out []string
	Walk(t, func(n *Node, _ *string, _ int) { out = append(out, n.ID) })
	slices.Sort(out)
	return out
}

// randomTree builds a tree of n nodes where every parent precedes its
// children in creation order, so the input is always acyclic.
func randomTree(t *testing.T, r *rand.Rand, n int) Tree {
	t.Helper()
	items := make([]OrderItem, n)
	for i := range n {
		var parent *string
		if i > 0 && r.IntN(4) != 0 {
			parent = strPtr(fmt.Sprintf("c%d", r.IntN(i)))
		}
		items[i] = OrderItem{ID: fmt.Sprintf("c%d", i), ParentID: parent, Order: r.IntN(5)}
	}
	tr, err := Build(items)
	if err != nil {
		t.Fatalf("Build random tree: %v", err)
	}
	return tr
}
