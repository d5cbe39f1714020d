package nodes

// Digraph is the read-only capability set needed to traverse a directed graph.
type Digraph[K comparable] interface {
	IDs() []K
	Neighbors(id K) []K
}

type graphNode[K comparable, T any] struct {
	value T
	out   []K
}

// Graph is a directed graph keyed by caller-supplied ids. Node and edge
// iteration follow insertion order so traversals are deterministic.
type Graph[K comparable, T any] struct {
	order []K
	nodes map[K]*graphNode[K, T]
	edges int
}

// NewGraph returns an empty graph.
func NewGraph[K comparable, T any]() *Graph[K, T] {
	return &Graph[K, T]{nodes: make(map[K]*graphNode[K, T])}
}

// Add inserts a node. It returns false and leaves the graph untouched when id
// is already present.
func (g *Graph[K, T]) Add(id K, v T) bool {
	if _, ok := g.nodes[id]; ok {
		return false
	}
	g.nodes[id] = &graphNode[K, T]{value: v}
	g.order = append(g.order, id)
	return true
}

// Has reports whether id is a node of the graph.
func (g *Graph[K, T]) Has(id K) bool {
	_, ok := g.nodes[id]
	return ok
}

// Value returns the payload stored for id.
func (g *Graph[K, T]) Value(id K) (T, bool) {
	n, ok := g.nodes[id]
	if !ok {
		var zero T
		return zero, false
	}
	return n.value, true
}

// AddEdge appends the edge from -> to. Parallel edges are kept. It returns
// false without changing the graph when either endpoint is missing.
func (g *Graph[K, T]) AddEdge(from, to K) bool {
	src, ok := g.nodes[from]
	if !ok || !g.Has(to) {
		return false
	}
	src.out = append(src.out, to)
	g.edges++
	return true
}

// IDs returns the node ids in insertion order.
func (g *Graph[K, T]) IDs() []K {
	out := make([]K, len(g.order))
	copy(out, g.order)
	return out
}

// Neighbors returns the targets of the outgoing edges of id in insertion order.
func (g *Graph[K, T]) Neighbors(id K) []K {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	out := make([]K, len(n.out))
	copy(out, n.out)
	return out
}

// Len returns the number of nodes.
func (g *Graph[K, T]) Len() int { return len(g.order) }

// EdgeCount returns the number of edges, parallel edges included.
func (g *Graph[K, T]) EdgeCount() int { return g.edges }
