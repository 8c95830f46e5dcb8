// Package resolver turns raw dependency declarations into classified,
// resolved references. Classification order: relative-path marker, platform
// builtin, alias-table prefix, external. Resolution only reads a frozen
// existence oracle, so it is parallel-safe per file.
package resolver

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/panbanda/vestige/pkg/extractor"
	"github.com/panbanda/vestige/pkg/filekind"
)

// DefaultExtensions is the ordered probe list for extensionless references.
var DefaultExtensions = []string{
	".ts", ".tsx", ".mts", ".cts",
	".js", ".jsx", ".mjs", ".cjs",
}

// nodeBuiltins are the platform builtin module names. Namespaced references
// such as "fs/promises" or "node:path" match by prefix.
var nodeBuiltins = []string{
	"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
	"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
	"events", "fs", "http", "http2", "https", "inspector", "module", "net",
	"os", "path", "perf_hooks", "process", "punycode", "querystring",
	"readline", "repl", "stream", "string_decoder", "timers", "tls",
	"trace_events", "tty", "url", "util", "v8", "vm", "wasi",
	"worker_threads", "zlib",
}

const (
	confidenceBase     = 0.5
	confidenceExists   = 0.4
	confidenceRelative = 0.1
	confidenceExternal = 0.9
)

// Resolver resolves raw dependencies against an alias table and an
// existence oracle. Safe for concurrent use once constructed.
type Resolver struct {
	oracle     Oracle
	extensions []string
	builtins   map[string]bool
	aliases    map[string]string
	// alias prefixes sorted longest first so the most specific prefix wins
	aliasOrder []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExtensions overrides the extension probe order.
func WithExtensions(exts []string) Option {
	return func(r *Resolver) {
		if len(exts) > 0 {
			r.extensions = exts
		}
	}
}

// WithAliases sets the alias table mapping import prefixes to directories.
func WithAliases(aliases map[string]string) Option {
	return func(r *Resolver) {
		for prefix, dir := range aliases {
			r.aliases[prefix] = dir
		}
	}
}

// WithBuiltins adds names treated as platform builtins.
func WithBuiltins(names []string) Option {
	return func(r *Resolver) {
		for _, n := range names {
			r.builtins[n] = true
		}
	}
}

// New creates a resolver reading existence from oracle.
func New(oracle Oracle, opts ...Option) *Resolver {
	r := &Resolver{
		oracle:     oracle,
		extensions: DefaultExtensions,
		builtins:   make(map[string]bool, len(nodeBuiltins)),
		aliases:    make(map[string]string),
	}
	for _, n := range nodeBuiltins {
		r.builtins[n] = true
	}
	for _, opt := range opts {
		opt(r)
	}

	r.aliasOrder = make([]string, 0, len(r.aliases))
	for prefix := range r.aliases {
		r.aliasOrder = append(r.aliasOrder, prefix)
	}
	sort.Slice(r.aliasOrder, func(i, j int) bool {
		if len(r.aliasOrder[i]) != len(r.aliasOrder[j]) {
			return len(r.aliasOrder[i]) > len(r.aliasOrder[j])
		}
		return r.aliasOrder[i] < r.aliasOrder[j]
	})

	return r
}

// Resolve classifies and resolves a single raw dependency. Resolving the
// same dependency against the same alias table and oracle is deterministic.
func (r *Resolver) Resolve(dep extractor.RawDependency) ResolvedDependency {
	resolved := ResolvedDependency{
		Source:          dep.SourceText,
		DeclaringFile:   dep.DeclaringFile,
		ImportedMembers: dep.ImportedMembers,
		Usage:           classifyUsage(dep),
		Line:            dep.Line,
	}

	source := dep.SourceText

	switch {
	case isRelative(source):
		resolved.Kind = Internal
		target := filepath.Join(filepath.Dir(dep.DeclaringFile), filepath.FromSlash(source))
		resolved.ResolvedPath, resolved.Exists = r.probe(target)
		resolved.Confidence = internalConfidence(resolved.Exists, true)

	case r.isBuiltin(source):
		resolved.Kind = Builtin
		resolved.Confidence = 1.0

	default:
		if prefix, dir, ok := r.matchAlias(source); ok {
			resolved.Kind = Internal
			target := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(source, prefix)))
			resolved.ResolvedPath, resolved.Exists = r.probe(target)
			resolved.Confidence = internalConfidence(resolved.Exists, false)
		} else {
			resolved.Kind = External
			resolved.Confidence = confidenceExternal
		}
	}

	return resolved
}

// ResolveAll resolves every dependency of one file.
func (r *Resolver) ResolveAll(deps []extractor.RawDependency) []ResolvedDependency {
	if len(deps) == 0 {
		return nil
	}
	out := make([]ResolvedDependency, len(deps))
	for i, dep := range deps {
		out[i] = r.Resolve(dep)
	}
	return out
}

// probe finds the concrete file for an internal reference. References with
// an extension are checked as-is; extensionless references probe the
// configured extension list, then <ref>/index.<ext> in the same order.
// A miss keeps the reference Internal with no resolved path, distinguishing
// "intended internal, broken" from "external".
func (r *Resolver) probe(target string) (string, bool) {
	if hasKnownExtension(target, r.extensions) {
		if r.oracle.Exists(target) {
			return filepath.Clean(target), true
		}
		return "", false
	}

	for _, ext := range r.extensions {
		candidate := target + ext
		if r.oracle.Exists(candidate) {
			return filepath.Clean(candidate), true
		}
	}
	for _, ext := range r.extensions {
		candidate := filepath.Join(target, "index"+ext)
		if r.oracle.Exists(candidate) {
			return filepath.Clean(candidate), true
		}
	}
	return "", false
}

func (r *Resolver) isBuiltin(source string) bool {
	name := strings.TrimPrefix(source, "node:")
	if r.builtins[name] {
		return true
	}
	// Namespaced builtin, e.g. fs/promises.
	if idx := strings.Index(name, "/"); idx > 0 {
		return r.builtins[name[:idx]]
	}
	return false
}

func (r *Resolver) matchAlias(source string) (prefix, dir string, ok bool) {
	for _, p := range r.aliasOrder {
		if strings.HasPrefix(source, p) {
			return p, r.aliases[p], true
		}
	}
	return "", "", false
}

func classifyUsage(dep extractor.RawDependency) Usage {
	switch {
	case dep.IsTypeOnly:
		return UsageBuildTime
	case dep.Kind == extractor.KindDynamic:
		return UsageRuntime
	case filekind.IsTest(dep.DeclaringFile):
		return UsageDevTime
	default:
		return UsageRuntime
	}
}

func internalConfidence(exists, relative bool) float64 {
	confidence := confidenceBase
	if exists {
		confidence += confidenceExists
	}
	if relative {
		confidence += confidenceRelative
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func isRelative(source string) bool {
	return strings.HasPrefix(source, "./") || strings.HasPrefix(source, "../") ||
		source == "." || source == ".."
}

func hasKnownExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
