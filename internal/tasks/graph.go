// Package tasks implements the dependency graph: tasks identified by a
// caller-supplied id and directed "depends on" edges between them.
//
// Adding an edge never checks for cycles. Callers batch their edges and then
// ask DetectCycle or FindCycle, which run a fresh depth-first search on every
// call.
package tasks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/nodes"
)

// Graph holds tasks and their dependencies. It is not safe for concurrent
// use.
type Graph struct {
	g               *nodes.Graph[string, Task]
	edges           []Edge
	defaultPriority Priority
	log             *logging.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithDefaultPriority sets the priority given to tasks added without one.
func WithDefaultPriority(p Priority) Option {
	return func(g *Graph) {
		if p.Valid() {
			g.defaultPriority = p
		}
	}
}

// WithLogger sets the logger used for task and cycle events.
func WithLogger(l *logging.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.log = l.WithComponent(logging.ComponentTasks)
		}
	}
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		g:               nodes.NewGraph[string, Task](),
		defaultPriority: PriorityMedium,
		log:             logging.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddTask registers t. The status is always reset to StatusPending.
func (g *Graph) AddTask(t Task) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("task id is empty: %w", fault.ErrValidation)
	}
	if t.Priority == 0 {
		t.Priority = g.defaultPriority
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("task %q: %v: %w", t.ID, t.Priority, fault.ErrValidation)
	}
	t.Status = StatusPending

	if !g.g.Add(t.ID, t) {
		return fmt.Errorf("task %q: %w", t.ID, fault.ErrDuplicateID)
	}
	g.log.Debug("task added", logging.FieldTask, t.ID)
	return nil
}

// AddEdge records that from depends on to. Both tasks must already exist.
// Repeated edges are kept.
func (g *Graph) AddEdge(from, to string) error {
	for _, id := range []string{from, to} {
		if !g.g.Has(id) {
			return fmt.Errorf("task %q: %w", id, fault.ErrNotFound)
		}
	}
	g.g.AddEdge(from, to)
	g.edges = append(g.edges, Edge{From: from, To: to})
	g.log.Debug("dependency added", logging.FieldFrom, from, logging.FieldTo, to)
	return nil
}

// DetectCycle reports whether any chain of dependencies leads back to where
// it started.
func (g *Graph) DetectCycle() bool {
	return g.FindCycle() != nil
}

// FindCycle returns one dependency cycle as a path whose first and last ids
// are equal, or nil when the graph is acyclic.
func (g *Graph) FindCycle() []string {
	path := nodes.FindCycle[string](g.g)
	if path != nil {
		g.log.Warn("dependency cycle", logging.FieldCycle, strings.Join(path, " -> "))
	}
	return path
}

// Get returns the task with the given id.
func (g *Graph) Get(id string) (Task, bool) {
	return g.g.Value(id)
}

// Tasks returns every task in insertion order.
func (g *Graph) Tasks() []Task {
	ids := g.g.IDs()
	out := make([]Task, 0, len(ids))
	for _, id := range ids {
		t, _ := g.g.Value(id)
		out = append(out, t)
	}
	return out
}

// Dependencies returns the ids id depends on, in the order the edges were
// added.
func (g *Graph) Dependencies(id string) []string {
	return g.g.Neighbors(id)
}

// Edges returns every edge in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Len returns the number of tasks.
func (g *Graph) Len() int { return g.g.Len() }

// NextID returns the smallest positive integer, as a string, that is not yet
// a task id.
func (g *Graph) NextID() string {
	for n := 1; ; n++ {
		if id := strconv.Itoa(n); !g.g.Has(id) {
			return id
		}
	}
}
