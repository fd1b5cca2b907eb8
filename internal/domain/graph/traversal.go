package graph

import (
	"fmt"
	"strings"
)

type Algorithm string

const (
	AlgorithmDFS Algorithm = "dfs"
	AlgorithmBFS Algorithm = "bfs"
)

func ParseAlgorithm(raw string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(raw))); a {
	case AlgorithmDFS, AlgorithmBFS:
		return a, nil
	case "":
		return AlgorithmDFS, nil
	default:
		return "", fmt.Errorf("unknown traversal algorithm %q", raw)
	}
}

// DFS returns every vertex reachable from start, start included, using an
// explicit stack. An unknown start yields just {start}.
func (g *Graph) DFS(start string) map[string]struct{} {
	visited := map[string]struct{}{}
	stack := []string{start}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[v]; seen {
			continue
		}
		visited[v] = struct{}{}
		for n := range g.adj[v] {
			if _, seen := visited[n]; !seen {
				stack = append(stack, n)
			}
		}
	}
	return visited
}

// BFS returns the same set as DFS. Vertices are marked on enqueue.
func (g *Graph) BFS(start string) map[string]struct{} {
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for n := range g.adj[v] {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return visited
}

func (g *Graph) Reachable(algorithm Algorithm, start string) map[string]struct{} {
	if algorithm == AlgorithmBFS {
		return g.BFS(start)
	}
	return g.DFS(start)
}
