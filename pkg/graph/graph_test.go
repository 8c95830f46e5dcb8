package graph

import (
	"testing"

	"github.com/panbanda/vestige/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func internalDep(from, to string) resolver.ResolvedDependency {
	return resolver.ResolvedDependency{
		Source:        to,
		DeclaringFile: from,
		ResolvedPath:  to,
		Kind:          resolver.Internal,
		Exists:        true,
		Confidence:    1.0,
		Usage:         resolver.UsageRuntime,
	}
}

func TestBuildCreatesNodeForEveryFile(t *testing.T) {
	files := []string{"a.ts", "b.ts", "c.ts"}
	g := Build(files, nil, EntryHints{})

	require.Len(t, g.Nodes, 3)
	for _, f := range files {
		assert.Contains(t, g.Nodes, f)
	}
	assert.Empty(t, g.Edges)
}

func TestBuildDependentsExactlyOnce(t *testing.T) {
	files := []string{"a.ts", "b.ts"}
	resolved := map[string][]resolver.ResolvedDependency{
		"a.ts": {internalDep("a.ts", "b.ts")},
	}

	g := Build(files, resolved, EntryHints{})

	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{From: "a.ts", To: "b.ts"}, g.Edges[0])
	assert.Equal(t, []string{"a.ts"}, g.Nodes["b.ts"].Dependents)
}

func TestBuildDeduplicatesEdges(t *testing.T) {
	// Two declarations resolving to the same file produce one edge and one
	// dependent entry.
	files := []string{"a.ts", "b.ts"}
	resolved := map[string][]resolver.ResolvedDependency{
		"a.ts": {
			internalDep("a.ts", "b.ts"),
			internalDep("a.ts", "b.ts"),
		},
	}

	g := Build(files, resolved, EntryHints{})

	assert.Len(t, g.Edges, 1)
	assert.Equal(t, []string{"a.ts"}, g.Nodes["b.ts"].Dependents)
	// Both declarations stay on the node record.
	assert.Len(t, g.Nodes["a.ts"].Dependencies, 2)
}

func TestBuildDropsOrphanEdges(t *testing.T) {
	files := []string{"a.ts"}
	resolved := map[string][]resolver.ResolvedDependency{
		"a.ts":       {internalDep("a.ts", "outside.ts")},
		"unknown.ts": {internalDep("unknown.ts", "a.ts")},
	}

	g := Build(files, resolved, EntryHints{})

	assert.Empty(t, g.Edges)
	assert.Empty(t, g.Nodes["a.ts"].Dependents)
	assert.NotContains(t, g.Nodes, "unknown.ts")
}

func TestBuildExternalAndBuiltinProduceNoEdges(t *testing.T) {
	files := []string{"a.ts", "b.ts"}
	resolved := map[string][]resolver.ResolvedDependency{
		"a.ts": {
			{Source: "react", DeclaringFile: "a.ts", Kind: resolver.External, Confidence: 0.9},
			{Source: "fs", DeclaringFile: "a.ts", Kind: resolver.Builtin, Confidence: 1.0},
		},
	}

	g := Build(files, resolved, EntryHints{})

	assert.Empty(t, g.Edges)
	assert.Len(t, g.Nodes["a.ts"].Dependencies, 2)
}

func TestEntryPointsFromManifest(t *testing.T) {
	files := []string{"src/index.ts", "src/other.ts"}
	g := Build(files, nil, EntryHints{
		ManifestEntries: []string{"src/index.ts"},
	})

	assert.True(t, g.IsEntryPoint("src/index.ts"))
	assert.False(t, g.IsEntryPoint("src/other.ts"))
	assert.False(t, g.EntryFallback)
}

func TestEntryPointOverridesBeatManifest(t *testing.T) {
	files := []string{"src/index.ts", "src/cli.ts"}
	g := Build(files, nil, EntryHints{
		ManifestEntries: []string{"src/index.ts"},
		Overrides:       []string{"src/cli.ts"},
	})

	assert.True(t, g.IsEntryPoint("src/cli.ts"))
	assert.False(t, g.IsEntryPoint("src/index.ts"))
}

func TestEntryFallbackWhenNothingResolves(t *testing.T) {
	files := []string{"a.ts", "b.ts"}
	g := Build(files, nil, EntryHints{
		ManifestEntries: []string{"does-not-exist.ts"},
	})

	assert.True(t, g.EntryFallback)
	assert.True(t, g.IsEntryPoint("a.ts"))
	assert.True(t, g.IsEntryPoint("b.ts"))
}

func TestEntryHintsResolveAgainstRoot(t *testing.T) {
	files := []string{"/proj/src/index.ts"}
	g := Build(files, nil, EntryHints{
		ManifestEntries: []string{"src/index.ts"},
		Root:            "/proj",
	})

	assert.True(t, g.IsEntryPoint("/proj/src/index.ts"))
	assert.False(t, g.EntryFallback)
}

func TestEmptyProject(t *testing.T) {
	g := Build(nil, nil, EntryHints{})

	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
	assert.Empty(t, g.EntryPoints)
	assert.False(t, g.EntryFallback)
	assert.Empty(t, g.Paths())
}

func TestAdjacency(t *testing.T) {
	files := []string{"a.ts", "b.ts", "c.ts"}
	resolved := map[string][]resolver.ResolvedDependency{
		"a.ts": {internalDep("a.ts", "b.ts"), internalDep("a.ts", "c.ts")},
	}

	g := Build(files, resolved, EntryHints{})
	adj := g.Adjacency()

	assert.ElementsMatch(t, []string{"b.ts", "c.ts"}, adj["a.ts"])
	assert.Empty(t, adj["b.ts"])
}
