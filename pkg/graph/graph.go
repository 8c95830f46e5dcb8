// Package graph assembles per-file resolved dependencies into a single
// project graph with reverse-edge tracking and entry-point detection.
// Assembly is a single-writer aggregation step; the finished graph is
// immutable and safe for concurrent readers.
package graph

import (
	"path/filepath"
	"sort"

	"github.com/panbanda/vestige/pkg/resolver"
)

// Node is one file in the project graph.
type Node struct {
	Path         string                        `json:"path"`
	Dependencies []resolver.ResolvedDependency `json:"dependencies,omitempty"`
	// Dependents lists files with an edge into this node. For every edge
	// A->B recorded once, B.Dependents contains A exactly once.
	Dependents []string `json:"dependents,omitempty"`
}

// Edge is a directed internal dependency between two known files.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ProjectGraph is the assembled dependency graph for one analysis run.
type ProjectGraph struct {
	Nodes       map[string]*Node    `json:"nodes"`
	Edges       []Edge              `json:"edges"`
	EntryPoints map[string]struct{} `json:"-"`
	// EntryFallback is true when no manifest entry resolved and every file
	// was treated as an entry point.
	EntryFallback bool `json:"entry_fallback,omitempty"`
}

// EntryHints carries entry-point candidates into Build.
type EntryHints struct {
	// ManifestEntries are entry fields declared by the project manifest,
	// relative to the project root.
	ManifestEntries []string
	// Overrides are explicitly configured entry points. When non-empty they
	// take precedence over manifest entries.
	Overrides []string
	// Root is the project root used to resolve entry paths.
	Root string
}

// Build assembles the project graph. One node is created per scanned file
// first, so files with zero dependencies still appear. Internal dependencies
// with a resolved, existing target produce a directed edge and a dependent
// back-reference on the target; duplicate edges between the same pair are
// dropped. External and Builtin dependencies are recorded on the node but
// never produce edges.
func Build(files []string, resolved map[string][]resolver.ResolvedDependency, hints EntryHints) *ProjectGraph {
	g := &ProjectGraph{
		Nodes:       make(map[string]*Node, len(files)),
		EntryPoints: make(map[string]struct{}),
	}

	for _, f := range files {
		path := filepath.Clean(f)
		if _, ok := g.Nodes[path]; !ok {
			g.Nodes[path] = &Node{Path: path}
		}
	}

	seen := make(map[Edge]bool)
	for path, deps := range resolved {
		from := filepath.Clean(path)
		node, ok := g.Nodes[from]
		if !ok {
			// Edges must connect known nodes; drop results for files
			// outside the scanned set rather than storing dangling edges.
			continue
		}
		node.Dependencies = append(node.Dependencies, deps...)

		for _, dep := range deps {
			if dep.Kind != resolver.Internal || !dep.Exists || dep.ResolvedPath == "" {
				continue
			}
			to := filepath.Clean(dep.ResolvedPath)
			target, ok := g.Nodes[to]
			if !ok {
				continue
			}
			edge := Edge{From: from, To: to}
			if seen[edge] {
				continue
			}
			seen[edge] = true
			g.Edges = append(g.Edges, edge)
			target.Dependents = append(target.Dependents, from)
		}
	}

	g.applyEntryPoints(hints)
	return g
}

func (g *ProjectGraph) applyEntryPoints(hints EntryHints) {
	candidates := hints.Overrides
	if len(candidates) == 0 {
		candidates = hints.ManifestEntries
	}

	for _, entry := range candidates {
		path := entry
		if hints.Root != "" && !filepath.IsAbs(entry) {
			path = filepath.Join(hints.Root, entry)
		}
		path = filepath.Clean(path)
		if _, ok := g.Nodes[path]; ok {
			g.EntryPoints[path] = struct{}{}
		}
	}

	// Fallback when nothing resolved: treat every file as an entry point,
	// degrading unused-file detection to a no-op instead of flagging the
	// whole tree.
	if len(g.EntryPoints) == 0 && len(g.Nodes) > 0 {
		g.EntryFallback = true
		for path := range g.Nodes {
			g.EntryPoints[path] = struct{}{}
		}
	}
}

// Paths returns all node paths in sorted order.
func (g *ProjectGraph) Paths() []string {
	paths := make([]string, 0, len(g.Nodes))
	for p := range g.Nodes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Adjacency returns the outgoing internal edges as an adjacency map.
func (g *ProjectGraph) Adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	return adj
}

// IsEntryPoint reports whether path is an entry point.
func (g *ProjectGraph) IsEntryPoint(path string) bool {
	_, ok := g.EntryPoints[filepath.Clean(path)]
	return ok
}
