package graph

import (
	"sort"

	"team-formation/internal/domain/collaboration"
)

// Graph is the undirected collaboration graph derived from the collaboration
// records. It holds no state of its own beyond the last rebuild; callers own
// the instance and rebuild it whenever the collaboration collection changes.
type Graph struct {
	adj map[string]map[string]struct{}
}

func New() *Graph {
	return &Graph{adj: map[string]map[string]struct{}{}}
}

// Rebuild discards the current edges and repopulates from records. Every
// collaboration contributes a->b and b->a; self pairs produce a single loop.
func (g *Graph) Rebuild(records []collaboration.Collaboration) {
	g.adj = make(map[string]map[string]struct{}, len(records)*2)
	for _, r := range records {
		a, b := r.Pair.A, r.Pair.B
		if a == "" || b == "" {
			continue
		}
		g.addEdge(a, b)
		g.addEdge(b, a)
	}
}

func (g *Graph) addEdge(from, to string) {
	set, ok := g.adj[from]
	if !ok {
		set = map[string]struct{}{}
		g.adj[from] = set
	}
	set[to] = struct{}{}
}

// Neighbors returns the neighbours of v sorted by id, or nil when v is unknown.
func (g *Graph) Neighbors(v string) []string {
	set := g.adj[v]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (g *Graph) Invalidate() {
	g.adj = map[string]map[string]struct{}{}
}

func (g *Graph) Empty() bool {
	return len(g.adj) == 0
}

// Len is the number of vertices with at least one edge.
func (g *Graph) Len() int {
	return len(g.adj)
}

// Adjacency returns a copy of the graph as sorted neighbour lists.
func (g *Graph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for v := range g.adj {
		out[v] = g.Neighbors(v)
	}
	return out
}
