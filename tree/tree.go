// Package tree implements labeled constituency parse trees, as printed by
// bracketing parsers such as LX-Parser or the Stanford parser.
package tree

import (
	"strings"
)

// Tree is a labeled constituency tree. A node without children is a leaf,
// and its Label is the word.
type Tree struct {
	Label    string  `json:"label"`
	Children []*Tree `json:"children,omitempty"`
}

// Leaf returns a leaf node for word.
func Leaf(word string) *Tree {
	return &Tree{Label: word}
}

// Node returns an inner node.
func Node(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// IsLeaf reports whether t is a word.
func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0
}

// IsPreterminal reports whether every child of t is a leaf.
func (t *Tree) IsPreterminal() bool {
	return t.Height() == 2
}

// Height is 1 for a leaf, 2 for a preterminal, and 1 more than the
// highest child otherwise.
func (t *Tree) Height() int {
	if t.IsLeaf() {
		return 1
	}

	max := 0
	for _, c := range t.Children {
		if h := c.Height(); h > max {
			max = h
		}
	}
	return max + 1
}

// Leaves returns the words of the tree, left to right.
func (t *Tree) Leaves() []string {
	var leaves []string
	t.walk(func(n *Tree) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n.Label)
		}
		return true
	})
	return leaves
}

// Subtrees returns, in pre-order, the inner nodes (t included) for which
// filter returns true. A nil filter keeps every node.
func (t *Tree) Subtrees(filter func(*Tree) bool) []*Tree {
	var found []*Tree
	t.walk(func(n *Tree) bool {
		if !n.IsLeaf() && (filter == nil || filter(n)) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// Find returns every subtree labeled label, nested ones included.
func (t *Tree) Find(label string) []*Tree {
	return t.Subtrees(func(n *Tree) bool { return n.Label == label })
}

// TopLevel returns the subtrees labeled label that are not contained in
// another subtree with the same label.
func (t *Tree) TopLevel(label string) []*Tree {
	var found []*Tree
	t.walk(func(n *Tree) bool {
		if n.IsLeaf() {
			return false
		}
		if n.Label == label {
			found = append(found, n)
			return false
		}
		return true
	})
	return found
}

// LeafPositions returns, for each leaf left to right, the child indices
// leading from t to the leaf.
func (t *Tree) LeafPositions() [][]int {
	var positions [][]int

	var visit func(n *Tree, path []int)
	visit = func(n *Tree, path []int) {
		if n.IsLeaf() {
			positions = append(positions, append([]int(nil), path...))
			return
		}
		for i, c := range n.Children {
			visit(c, append(path, i))
		}
	}
	visit(t, nil)

	return positions
}

// At returns the node reached by following the child indices in pos, or
// nil if pos leaves the tree.
func (t *Tree) At(pos []int) *Tree {
	n := t
	for _, i := range pos {
		if i < 0 || i >= len(n.Children) {
			return nil
		}
		n = n.Children[i]
	}
	return n
}

// Reversed returns a deep copy of t with the children of every node in
// reverse order.
func (t *Tree) Reversed() *Tree {
	r := &Tree{Label: t.Label}
	if t.IsLeaf() {
		return r
	}

	r.Children = make([]*Tree, len(t.Children))
	for i, c := range t.Children {
		r.Children[len(t.Children)-1-i] = c.Reversed()
	}
	return r
}

// String prints the tree in bracketed notation.
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	if t.IsLeaf() {
		b.WriteString(t.Label)
		return
	}

	b.WriteByte('(')
	b.WriteString(t.Label)
	for _, c := range t.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// walk visits nodes in pre-order. Returning false from visit skips the
// children of the node.
func (t *Tree) walk(visit func(*Tree) bool) {
	if !visit(t) {
		return
	}
	for _, c := range t.Children {
		c.walk(visit)
	}
}
