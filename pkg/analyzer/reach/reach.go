// Package reach computes file reachability over the project graph using a
// breadth-first traversal from the entry-point set.
package reach

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/panbanda/vestige/pkg/graph"
)

// Result reports which files the entry points cannot reach.
type Result struct {
	// Unreached are files not reachable from any entry point, sorted.
	Unreached []string `json:"unreached"`
	// Reached is the count of reachable files.
	Reached int `json:"reached"`
	// Total is the number of files in the graph.
	Total int `json:"total"`
	// EntryFallback is true when the graph had no declared entry points and
	// every file was treated as one, making this result vacuous.
	EntryFallback bool `json:"entry_fallback,omitempty"`
}

// UnreachedFiles runs a BFS from the graph's entry points and returns every
// file the traversal never visits. Entry points are never reported unreached.
func UnreachedFiles(g *graph.ProjectGraph) *Result {
	paths := g.Paths()
	total := len(paths)

	result := &Result{
		Total:         total,
		EntryFallback: g.EntryFallback,
	}
	if total == 0 {
		result.Unreached = []string{}
		return result
	}

	index := make(map[string]uint32, total)
	for i, p := range paths {
		index[p] = uint32(i)
	}

	adj := g.Adjacency()

	visited := roaring.New()
	var queue []string
	for entry := range g.EntryPoints {
		if i, ok := index[entry]; ok && visited.CheckedAdd(i) {
			queue = append(queue, entry)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adj[current] {
			if i, ok := index[next]; ok && visited.CheckedAdd(i) {
				queue = append(queue, next)
			}
		}
	}

	unreached := make([]string, 0, total-int(visited.GetCardinality()))
	for i, p := range paths {
		if !visited.Contains(uint32(i)) {
			unreached = append(unreached, p)
		}
	}
	sort.Strings(unreached)

	result.Unreached = unreached
	result.Reached = int(visited.GetCardinality())
	return result
}
