// Package depgraph orchestrates the full analysis pipeline: manifest and
// alias loading, parallel extraction with caching, resolution against the
// scanned file set, and graph assembly.
package depgraph

import (
	"context"
	"encoding/json"

	"github.com/panbanda/vestige/internal/cache"
	"github.com/panbanda/vestige/internal/fileproc"
	"github.com/panbanda/vestige/internal/progress"
	"github.com/panbanda/vestige/pkg/config"
	"github.com/panbanda/vestige/pkg/extractor"
	"github.com/panbanda/vestige/pkg/graph"
	"github.com/panbanda/vestige/pkg/manifest"
	"github.com/panbanda/vestige/pkg/resolver"
	"github.com/panbanda/vestige/pkg/source"
)

// Analyzer runs the extraction-resolution-assembly pipeline.
type Analyzer struct {
	cfg        *config.Config
	src        source.ContentSource
	parseCache *extractor.ParseCache
	diskCache  *cache.Cache
	jobs       int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSource overrides the content source (default: filesystem).
func WithSource(src source.ContentSource) Option {
	return func(a *Analyzer) { a.src = src }
}

// WithParseCache shares an in-memory extraction cache across runs.
func WithParseCache(pc *extractor.ParseCache) Option {
	return func(a *Analyzer) { a.parseCache = pc }
}

// WithDiskCache enables the persistent extraction cache.
func WithDiskCache(dc *cache.Cache) Option {
	return func(a *Analyzer) { a.diskCache = dc }
}

// WithJobs caps the extraction worker count.
func WithJobs(jobs int) Option {
	return func(a *Analyzer) { a.jobs = jobs }
}

// New creates an analyzer with the given config.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	a := &Analyzer{
		cfg: cfg,
		src: source.NewFilesystem(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.parseCache == nil {
		a.parseCache = extractor.NewParseCache(0)
	}
	if a.jobs == 0 {
		a.jobs = cfg.Concurrency.Jobs
	}
	return a
}

// Result is the output of a full analysis run.
type Result struct {
	Graph *graph.ProjectGraph `json:"graph"`
	// Symbols maps each file to its detected symbol declarations.
	Symbols  map[string][]extractor.SymbolDeclaration `json:"symbols,omitempty"`
	Manifest *manifest.Manifest                       `json:"manifest,omitempty"`
	// Warnings are per-file extraction failures; they never abort a run.
	Warnings []fileproc.ProcessingError `json:"warnings,omitempty"`
}

type fileExtraction struct {
	path   string
	result *extractor.Result
}

// Analyze builds the project graph for files under root. Per-file read
// failures are collected as warnings; only a cancelled context or a broken
// manifest read is a hard error.
func (a *Analyzer) Analyze(ctx context.Context, root string, files []string) (*Result, error) {
	m, err := manifest.Load(root)
	if err != nil && err != manifest.ErrNoManifest {
		return nil, err
	}

	aliases, err := manifest.LoadAliases(root)
	if err != nil {
		return nil, err
	}
	// Config aliases win over compiler-config aliases on prefix collisions.
	for prefix, dir := range a.cfg.Analyze.Aliases {
		aliases[prefix] = dir
	}

	tracker := progress.FromContext(ctx)
	extractions, procErrs := fileproc.ForEachFileWithContext(ctx, files, a.jobs,
		func(path string) (fileExtraction, error) {
			res, err := a.extractFile(path)
			if err != nil {
				return fileExtraction{}, err
			}
			return fileExtraction{path: path, result: res}, nil
		},
		tracker.Tick,
	)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	oracle := resolver.NewFileSet(files)
	res := resolver.New(oracle,
		resolver.WithExtensions(a.cfg.Analyze.Extensions),
		resolver.WithAliases(aliases),
		resolver.WithBuiltins(a.cfg.Analyze.Builtins),
	)

	resolved := make(map[string][]resolver.ResolvedDependency, len(extractions))
	symbols := make(map[string][]extractor.SymbolDeclaration)
	for _, ex := range extractions {
		resolved[ex.path] = res.ResolveAll(ex.result.Dependencies)
		if len(ex.result.Symbols) > 0 {
			symbols[ex.path] = ex.result.Symbols
		}
	}

	result := &Result{
		Graph: graph.Build(files, resolved, graph.EntryHints{
			ManifestEntries: m.Entries(),
			Overrides:       a.cfg.Analyze.EntryPoints,
			Root:            root,
		}),
		Symbols:  symbols,
		Manifest: m,
	}
	if procErrs != nil {
		result.Warnings = procErrs.Errors
	}
	return result, nil
}

// extractFile reads and extracts one file, consulting the disk cache first
// and memoizing through the parse cache.
func (a *Analyzer) extractFile(path string) (*extractor.Result, error) {
	content, err := a.src.Read(path)
	if err != nil {
		return nil, err
	}

	if a.diskCache != nil && a.diskCache.Enabled() {
		hash := cache.HashBytes(content)
		if data, ok := a.diskCache.Get(path, hash); ok {
			var cached extractor.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
			// Corrupt entry; fall through and overwrite it.
		}

		result := a.parseCache.GetOrCompute(path, extractor.Fingerprint(content), func() *extractor.Result {
			return extractor.Extract(path, content)
		})
		if data, err := json.Marshal(result); err == nil {
			a.diskCache.Set(path, hash, data)
		}
		return result, nil
	}

	return a.parseCache.GetOrCompute(path, extractor.Fingerprint(content), func() *extractor.Result {
		return extractor.Extract(path, content)
	}), nil
}

// Source returns the analyzer's content source, for downstream passes that
// re-read file text.
func (a *Analyzer) Source() source.ContentSource {
	return a.src
}
