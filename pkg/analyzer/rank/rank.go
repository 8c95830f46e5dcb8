// Package rank scores files by structural importance using PageRank over the
// dependency graph, so heavily-depended-on files rank high. It also
// summarizes strongly connected components.
package rank

import (
	"sort"

	"github.com/panbanda/vestige/pkg/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

const (
	damping   = 0.85
	tolerance = 1e-6
)

// FileRank is one file with its importance score.
type FileRank struct {
	Path string `json:"path"`
	// Score is the PageRank value; scores across a run sum to ~1.
	Score float64 `json:"score"`
	// Dependents is the direct dependent count, for context.
	Dependents int `json:"dependents"`
}

// Result holds ranked files and a cycle-structure summary.
type Result struct {
	Ranks []FileRank `json:"ranks"`
	// StronglyConnected is the number of components with more than one file,
	// i.e. groups of files that mutually depend on each other.
	StronglyConnected int `json:"strongly_connected"`
	// LargestComponent is the file count of the biggest such group.
	LargestComponent int `json:"largest_component,omitempty"`
}

// Rank scores every file in the graph. Files nothing depends on converge to
// the baseline score.
func Rank(g *graph.ProjectGraph) *Result {
	paths := g.Paths()
	result := &Result{Ranks: []FileRank{}}
	if len(paths) == 0 {
		return result
	}

	ids := make(map[string]int64, len(paths))
	dg := simple.NewDirectedGraph()
	for i, p := range paths {
		ids[p] = int64(i)
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges {
		from, to := ids[e.From], ids[e.To]
		if from == to {
			continue // self-loops are not representable in simple graphs
		}
		// An import edge votes for its target, so heavily-imported files
		// accumulate score.
		dg.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	scores := network.PageRank(dg, damping, tolerance)

	ranks := make([]FileRank, 0, len(paths))
	for _, p := range paths {
		dependents := 0
		if node, ok := g.Nodes[p]; ok {
			dependents = len(node.Dependents)
		}
		ranks = append(ranks, FileRank{
			Path:       p,
			Score:      scores[ids[p]],
			Dependents: dependents,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Score != ranks[j].Score {
			return ranks[i].Score > ranks[j].Score
		}
		return ranks[i].Path < ranks[j].Path
	})
	result.Ranks = ranks

	for _, component := range topo.TarjanSCC(dg) {
		if len(component) > 1 {
			result.StronglyConnected++
			if len(component) > result.LargestComponent {
				result.LargestComponent = len(component)
			}
		}
	}
	return result
}
