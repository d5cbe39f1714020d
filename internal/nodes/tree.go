// Package nodes provides the generic tree and graph containers shared by the
// budget and task engines.
//
// Trees are arenas: every node lives in a single slice owned by the Tree and is
// addressed by its NodeID. A node owns its children through the id list it
// holds, while the parent link is a plain index used only to walk upward. No
// node ever holds a pointer to another node.
package nodes

import (
	"errors"
	"iter"
)

// NodeID addresses a node inside a Tree. Ids are dense and never reused.
type NodeID int

// NoParent is the parent id reported for the root.
const NoParent NodeID = -1

// ErrUnknownNode is returned when an id does not belong to the tree.
var ErrUnknownNode = errors.New("unknown node")

// Hierarchy is the read-only capability set of a rooted tree.
type Hierarchy interface {
	Root() NodeID
	Children(id NodeID) []NodeID
	Parent(id NodeID) (NodeID, bool)
}

type treeNode[T any] struct {
	value    T
	parent   NodeID
	children []NodeID
}

// Tree is a rooted, ordered tree of payloads of type T.
type Tree[T any] struct {
	nodes []treeNode[T]
}

// NewTree creates a tree whose root carries the given payload.
func NewTree[T any](root T) *Tree[T] {
	return &Tree[T]{
		nodes: []treeNode[T]{{value: root, parent: NoParent}},
	}
}

// Root returns the id of the root node.
func (t *Tree[T]) Root() NodeID { return 0 }

// Len returns the number of nodes, root included.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Contains reports whether id addresses a node of this tree.
func (t *Tree[T]) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Add appends a new child under parent and returns its id.
func (t *Tree[T]) Add(parent NodeID, v T) (NodeID, error) {
	if !t.Contains(parent) {
		return NoParent, ErrUnknownNode
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode[T]{value: v, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// Parent returns the parent of id. The second result is false for the root
// and for ids outside the tree.
func (t *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	if !t.Contains(id) {
		return NoParent, false
	}
	p := t.nodes[id].parent
	return p, p != NoParent
}

// Children returns a copy of the child ids of id in insertion order.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	if !t.Contains(id) {
		return nil
	}
	out := make([]NodeID, len(t.nodes[id].children))
	copy(out, t.nodes[id].children)
	return out
}

// Value returns the payload stored at id. It panics if id is not in the tree.
func (t *Tree[T]) Value(id NodeID) T {
	return t.nodes[id].value
}

// Update applies fn to the payload stored at id in place.
func (t *Tree[T]) Update(id NodeID, fn func(*T)) error {
	if !t.Contains(id) {
		return ErrUnknownNode
	}
	fn(&t.nodes[id].value)
	return nil
}

// Edit applies fn to the payload stored at id in place. Like Value it
// panics if id is not in the tree; use Update for ids from outside.
func (t *Tree[T]) Edit(id NodeID, fn func(*T)) {
	fn(&t.nodes[id].value)
}

// Depth returns the number of edges between id and the root.
func (t *Tree[T]) Depth(id NodeID) int {
	d := 0
	for p, ok := t.Parent(id); ok; p, ok = t.Parent(p) {
		d++
	}
	return d
}

// Ancestors yields the ancestors of id from its parent up to the root.
func (t *Tree[T]) Ancestors(id NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for p, ok := t.Parent(id); ok; p, ok = t.Parent(p) {
			if !yield(p) {
				return
			}
		}
	}
}

type walkFrame struct {
	id    NodeID
	depth int
}

// Walk visits every node in pre-order, children in insertion order, passing
// the node id and its depth. Returning false from fn stops the walk.
func (t *Tree[T]) Walk(fn func(id NodeID, depth int) bool) {
	stack := []walkFrame{{id: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.id, f.depth) {
			return
		}
		kids := t.nodes[f.id].children
		// Push in reverse so the first child is popped first.
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{id: kids[i], depth: f.depth + 1})
		}
	}
}

// Find returns the first node in pre-order whose payload satisfies match.
func (t *Tree[T]) Find(match func(T) bool) (NodeID, bool) {
	found := NoParent
	t.Walk(func(id NodeID, _ int) bool {
		if match(t.nodes[id].value) {
			found = id
			return false
		}
		return true
	})
	return found, found != NoParent
}
