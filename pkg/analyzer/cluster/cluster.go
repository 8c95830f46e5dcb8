// Package cluster groups files by directory and measures how self-contained
// each directory is, plus detects dependency cycles.
package cluster

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/panbanda/vestige/pkg/graph"
)

// Cluster is a directory grouping with cohesion metrics.
type Cluster struct {
	// Name is the top-level directory segment, "." for root-level files.
	Name  string   `json:"name"`
	Files []string `json:"files"`
	// InternalEdges are edges whose source and target both live in the cluster.
	InternalEdges int `json:"internal_edges"`
	// OutgoingEdges are edges leaving the cluster.
	OutgoingEdges int `json:"outgoing_edges"`
	// Cohesion is InternalEdges over all edges originating in the cluster.
	// Zero when the cluster originates no edges.
	Cohesion float64 `json:"cohesion"`
	// Coupling is 1 - Cohesion, or zero when the cluster originates no edges.
	Coupling float64 `json:"coupling"`
}

// Clusters groups graph nodes by their top-level directory under root and
// computes per-cluster cohesion. Clusters are sorted by name.
func Clusters(g *graph.ProjectGraph, root string) []Cluster {
	membership := make(map[string]string, len(g.Nodes))
	byName := make(map[string]*Cluster)

	for _, path := range g.Paths() {
		name := clusterName(root, path)
		membership[path] = name
		c, ok := byName[name]
		if !ok {
			c = &Cluster{Name: name}
			byName[name] = c
		}
		c.Files = append(c.Files, path)
	}

	for _, e := range g.Edges {
		from := membership[e.From]
		c := byName[from]
		if c == nil {
			continue
		}
		if membership[e.To] == from {
			c.InternalEdges++
		} else {
			c.OutgoingEdges++
		}
	}

	clusters := make([]Cluster, 0, len(byName))
	for _, c := range byName {
		total := c.InternalEdges + c.OutgoingEdges
		if total > 0 {
			c.Cohesion = float64(c.InternalEdges) / float64(total)
			c.Coupling = 1 - c.Cohesion
		}
		sort.Strings(c.Files)
		clusters = append(clusters, *c)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i].Name < clusters[j].Name })
	return clusters
}

// clusterName returns the first path segment of path relative to root, or
// "." for files directly under root.
func clusterName(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if idx := strings.Index(rel, "/"); idx > 0 {
		return rel[:idx]
	}
	return "."
}

// Cycle is one dependency cycle, listed in traversal order. The first and
// last element are the same file.
type Cycle struct {
	Files []string `json:"files"`
}

// Cycles finds dependency cycles with a depth-first traversal. Each closure
// of the recursion stack reports one cycle; the same underlying loop entered
// from different start files can be reported more than once.
func Cycles(g *graph.ProjectGraph) []Cycle {
	adj := g.Adjacency()
	for _, targets := range adj {
		sort.Strings(targets)
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(g.Nodes))

	var cycles []Cycle
	var stack []string

	var visit func(node string)
	visit = func(node string) {
		state[node] = inStack
		stack = append(stack, node)

		for _, next := range adj[node] {
			switch state[next] {
			case unvisited:
				visit(next)
			case inStack:
				// Back edge: the stack suffix from next onward is a cycle.
				for i, frame := range stack {
					if frame == next {
						cycle := make([]string, 0, len(stack)-i+1)
						cycle = append(cycle, stack[i:]...)
						cycle = append(cycle, next)
						cycles = append(cycles, Cycle{Files: cycle})
						break
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[node] = done
	}

	for _, path := range g.Paths() {
		if state[path] == unvisited {
			visit(path)
		}
	}
	return cycles
}
