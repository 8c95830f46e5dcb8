package depgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/panbanda/vestige/internal/cache"
	"github.com/panbanda/vestige/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func sourceFiles(root string, rels ...string) []string {
	files := make([]string, len(rels))
	for i, rel := range rels {
		files[i] = filepath.Join(root, filepath.FromSlash(rel))
	}
	return files
}

func TestAnalyzeEndToEnd(t *testing.T) {
	root := writeProject(t, map[string]string{
		"package.json": `{"name": "demo", "main": "src/index.ts"}`,
		"src/index.ts": `import { helper } from './util';
helper();
`,
		"src/util.ts": `export function helper() {}
`,
		"src/orphan.ts": `export const unused = 1;
`,
	})
	files := sourceFiles(root, "src/index.ts", "src/util.ts", "src/orphan.ts")

	a := New(config.DefaultConfig())
	result, err := a.Analyze(context.Background(), root, files)
	require.NoError(t, err)

	g := result.Graph
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, filepath.Join(root, "src/index.ts"), g.Edges[0].From)
	assert.Equal(t, filepath.Join(root, "src/util.ts"), g.Edges[0].To)

	assert.True(t, g.IsEntryPoint(filepath.Join(root, "src/index.ts")))
	assert.False(t, g.EntryFallback)

	require.NotNil(t, result.Manifest)
	assert.Equal(t, "demo", result.Manifest.Name)

	utilSymbols := result.Symbols[filepath.Join(root, "src/util.ts")]
	require.Len(t, utilSymbols, 1)
	assert.Equal(t, "helper", utilSymbols[0].Name)

	assert.Empty(t, result.Warnings)
}

func TestAnalyzeNoManifest(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.ts": `import './b';
`,
		"b.ts": ``,
	})
	files := sourceFiles(root, "a.ts", "b.ts")

	a := New(config.DefaultConfig())
	result, err := a.Analyze(context.Background(), root, files)
	require.NoError(t, err)

	assert.Nil(t, result.Manifest)
	// No manifest and no overrides: every file is an entry point.
	assert.True(t, result.Graph.EntryFallback)
}

func TestAnalyzeTsconfigAliases(t *testing.T) {
	root := writeProject(t, map[string]string{
		"tsconfig.json": `{
  // compiler options with an alias table
  "compilerOptions": {
    "baseUrl": ".",
    "paths": {
      "@app/*": ["src/app/*"],
    }
  }
}`,
		"src/main.ts": `import { boot } from '@app/boot';
`,
		"src/app/boot.ts": `export function boot() {}
`,
	})
	files := sourceFiles(root, "src/main.ts", "src/app/boot.ts")

	a := New(config.DefaultConfig())
	result, err := a.Analyze(context.Background(), root, files)
	require.NoError(t, err)

	require.Len(t, result.Graph.Edges, 1)
	assert.Equal(t, filepath.Join(root, "src/app/boot.ts"), result.Graph.Edges[0].To)
}

func TestAnalyzeConfigEntryOverrides(t *testing.T) {
	root := writeProject(t, map[string]string{
		"package.json": `{"main": "a.ts"}`,
		"a.ts":         ``,
		"b.ts":         ``,
	})
	files := sourceFiles(root, "a.ts", "b.ts")

	cfg := config.DefaultConfig()
	cfg.Analyze.EntryPoints = []string{"b.ts"}

	a := New(cfg)
	result, err := a.Analyze(context.Background(), root, files)
	require.NoError(t, err)

	assert.True(t, result.Graph.IsEntryPoint(filepath.Join(root, "b.ts")))
	assert.False(t, result.Graph.IsEntryPoint(filepath.Join(root, "a.ts")))
}

func TestAnalyzeUnreadableFileIsWarning(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.ts": ``,
	})
	files := append(sourceFiles(root, "a.ts"), filepath.Join(root, "missing.ts"))

	a := New(config.DefaultConfig())
	result, err := a.Analyze(context.Background(), root, files)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, filepath.Join(root, "missing.ts"), result.Warnings[0].Path)
	// The unreadable file still has a node.
	assert.Contains(t, result.Graph.Nodes, filepath.Join(root, "missing.ts"))
}

func TestAnalyzeDiskCacheRoundTrip(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.ts": `import './b';
`,
		"b.ts": ``,
	})
	files := sourceFiles(root, "a.ts", "b.ts")

	diskCache, err := cache.New(filepath.Join(root, ".vestige/cache"), 24, true)
	require.NoError(t, err)

	run := func() int {
		a := New(config.DefaultConfig(), WithDiskCache(diskCache))
		result, err := a.Analyze(context.Background(), root, files)
		require.NoError(t, err)
		return len(result.Graph.Edges)
	}

	// Second run reads extraction results from disk and must agree.
	assert.Equal(t, run(), run())
}

func TestAnalyzeEmptyFileList(t *testing.T) {
	root := t.TempDir()

	a := New(config.DefaultConfig())
	result, err := a.Analyze(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Graph.Nodes)
	assert.Empty(t, result.Graph.Edges)
}
