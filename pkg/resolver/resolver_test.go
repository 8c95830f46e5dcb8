package resolver

import (
	"testing"

	"github.com/panbanda/vestige/pkg/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOracle() *FileSet {
	return NewFileSet([]string{
		"src/app.ts",
		"src/util.ts",
		"src/components/index.ts",
		"src/lib/api.ts",
	})
}

func dep(source, from string) extractor.RawDependency {
	return extractor.RawDependency{
		SourceText:    source,
		DeclaringFile: from,
		Kind:          extractor.KindStatic,
	}
}

func TestResolveRelative(t *testing.T) {
	r := New(testOracle())

	resolved := r.Resolve(dep("./util", "src/app.ts"))
	assert.Equal(t, Internal, resolved.Kind)
	assert.True(t, resolved.Exists)
	assert.Equal(t, "src/util.ts", resolved.ResolvedPath)
	// base 0.5 + exists 0.4 + relative 0.1
	assert.InDelta(t, 1.0, resolved.Confidence, 1e-9)
}

func TestResolveRelativeWithExtension(t *testing.T) {
	r := New(testOracle())

	resolved := r.Resolve(dep("./util.ts", "src/app.ts"))
	assert.Equal(t, Internal, resolved.Kind)
	assert.True(t, resolved.Exists)
	assert.Equal(t, "src/util.ts", resolved.ResolvedPath)
}

func TestResolveIndexProbe(t *testing.T) {
	r := New(testOracle())

	resolved := r.Resolve(dep("./components", "src/app.ts"))
	assert.Equal(t, Internal, resolved.Kind)
	assert.True(t, resolved.Exists)
	assert.Equal(t, "src/components/index.ts", resolved.ResolvedPath)
}

func TestResolveRelativeMiss(t *testing.T) {
	r := New(testOracle())

	resolved := r.Resolve(dep("./missing", "src/app.ts"))
	// A relative reference stays Internal even when nothing matches.
	assert.Equal(t, Internal, resolved.Kind)
	assert.False(t, resolved.Exists)
	assert.Empty(t, resolved.ResolvedPath)
	// base 0.5 + relative 0.1
	assert.InDelta(t, 0.6, resolved.Confidence, 1e-9)
}

func TestResolveBuiltin(t *testing.T) {
	r := New(testOracle())

	for _, source := range []string{"fs", "path", "node:path", "fs/promises", "node:fs/promises"} {
		resolved := r.Resolve(dep(source, "src/app.ts"))
		assert.Equal(t, Builtin, resolved.Kind, source)
		assert.Empty(t, resolved.ResolvedPath, source)
		assert.InDelta(t, 1.0, resolved.Confidence, 1e-9, source)
	}
}

func TestResolveExternal(t *testing.T) {
	r := New(testOracle())

	resolved := r.Resolve(dep("react", "src/app.ts"))
	assert.Equal(t, External, resolved.Kind)
	assert.Empty(t, resolved.ResolvedPath)
	assert.InDelta(t, 0.9, resolved.Confidence, 1e-9)

	scoped := r.Resolve(dep("@scope/pkg", "src/app.ts"))
	assert.Equal(t, External, scoped.Kind)
}

func TestResolveAlias(t *testing.T) {
	r := New(testOracle(), WithAliases(map[string]string{
		"@lib/": "src/lib",
	}))

	resolved := r.Resolve(dep("@lib/api", "src/app.ts"))
	assert.Equal(t, Internal, resolved.Kind)
	assert.True(t, resolved.Exists)
	assert.Equal(t, "src/lib/api.ts", resolved.ResolvedPath)
	// Alias match is not relative: base 0.5 + exists 0.4
	assert.InDelta(t, 0.9, resolved.Confidence, 1e-9)
}

func TestLongestAliasPrefixWins(t *testing.T) {
	r := New(testOracle(), WithAliases(map[string]string{
		"@/":     "src",
		"@/lib/": "src/lib",
	}))

	resolved := r.Resolve(dep("@/lib/api", "src/app.ts"))
	assert.Equal(t, "src/lib/api.ts", resolved.ResolvedPath)
}

func TestBuiltinBeatsAlias(t *testing.T) {
	// Classification order puts builtins before the alias table.
	r := New(testOracle(), WithAliases(map[string]string{
		"fs": "src/fs-wrapper",
	}))

	resolved := r.Resolve(dep("fs", "src/app.ts"))
	assert.Equal(t, Builtin, resolved.Kind)
}

func TestCustomBuiltins(t *testing.T) {
	r := New(testOracle(), WithBuiltins([]string{"bun"}))

	resolved := r.Resolve(dep("bun", "src/app.ts"))
	assert.Equal(t, Builtin, resolved.Kind)
}

func TestUsageClassification(t *testing.T) {
	r := New(testOracle())

	typeOnly := r.Resolve(extractor.RawDependency{
		SourceText: "./util", DeclaringFile: "src/app.ts",
		Kind: extractor.KindStatic, IsTypeOnly: true,
	})
	assert.Equal(t, UsageBuildTime, typeOnly.Usage)

	dynamic := r.Resolve(extractor.RawDependency{
		SourceText: "./util", DeclaringFile: "src/app.ts",
		Kind: extractor.KindDynamic,
	})
	assert.Equal(t, UsageRuntime, dynamic.Usage)

	test := r.Resolve(extractor.RawDependency{
		SourceText: "./util", DeclaringFile: "src/app.test.ts",
		Kind: extractor.KindStatic,
	})
	assert.Equal(t, UsageDevTime, test.Usage)

	plain := r.Resolve(dep("./util", "src/app.ts"))
	assert.Equal(t, UsageRuntime, plain.Usage)
}

func TestResolveDeterministic(t *testing.T) {
	r := New(testOracle(), WithAliases(map[string]string{"@lib/": "src/lib"}))

	d := dep("@lib/api", "src/app.ts")
	first := r.Resolve(d)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Resolve(d))
	}
}

func TestResolveAll(t *testing.T) {
	r := New(testOracle())

	deps := []extractor.RawDependency{
		dep("./util", "src/app.ts"),
		dep("react", "src/app.ts"),
	}
	resolved := r.ResolveAll(deps)
	require.Len(t, resolved, 2)
	assert.Equal(t, Internal, resolved[0].Kind)
	assert.Equal(t, External, resolved[1].Kind)

	assert.Nil(t, r.ResolveAll(nil))
}

func TestCustomExtensionOrder(t *testing.T) {
	oracle := NewFileSet([]string{"src/mod.js", "src/mod.ts"})
	r := New(oracle, WithExtensions([]string{".js", ".ts"}))

	resolved := r.Resolve(dep("./mod", "src/app.ts"))
	// The first extension in the probe order wins.
	assert.Equal(t, "src/mod.js", resolved.ResolvedPath)
}
