package nodes

// FindCycle searches g for a directed cycle and returns its path with the
// closing node repeated at the end (a -> b -> a is returned as [a b a]).
// It returns nil when g is acyclic.
//
// The search is an iterative depth-first traversal started from every node
// not yet finished, in g.IDs() order. Each frame remembers which neighbor to
// try next, so deep dependency chains never grow the goroutine stack. The
// visited and on-path sets are allocated per call.
func FindCycle[K comparable](g Digraph[K]) []K {
	done := make(map[K]bool)   // fully explored, no cycle through it
	onPath := make(map[K]bool) // on the active DFS path

	for _, start := range g.IDs() {
		if done[start] {
			continue
		}

		stack := []dfsFrame[K]{{id: start, next: g.Neighbors(start)}}
		onPath[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.pos == len(top.next) {
				onPath[top.id] = false
				done[top.id] = true
				stack = stack[:len(stack)-1]
				continue
			}

			n := top.next[top.pos]
			top.pos++

			switch {
			case onPath[n]:
				return cyclePath(stack, n)
			case done[n]:
				continue
			default:
				onPath[n] = true
				stack = append(stack, dfsFrame[K]{id: n, next: g.Neighbors(n)})
			}
		}
	}
	return nil
}

// HasCycle reports whether g contains a directed cycle.
func HasCycle[K comparable](g Digraph[K]) bool {
	return FindCycle(g) != nil
}

// dfsFrame is one entry of the explicit DFS stack: a node and the position of
// the next neighbor to explore.
type dfsFrame[K comparable] struct {
	id   K
	next []K
	pos  int
}

func cyclePath[K comparable](stack []dfsFrame[K], closing K) []K {
	start := 0
	for i, f := range stack {
		if f.id == closing {
			start = i
			break
		}
	}
	path := make([]K, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.id)
	}
	return append(path, closing)
}
