// Package callgraph finds symbols that nothing references, using whole-word
// text search over the declaring file and its graph dependents. It is a
// textual approximation, deliberately matching the pattern-based extraction:
// a name mentioned anywhere in a referencing file counts as a use.
package callgraph

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/panbanda/vestige/internal/fileproc"
	"github.com/panbanda/vestige/pkg/extractor"
	"github.com/panbanda/vestige/pkg/filekind"
	"github.com/panbanda/vestige/pkg/graph"
	"github.com/panbanda/vestige/pkg/source"
)

// UnusedSymbol is a declared symbol with no detected references.
type UnusedSymbol struct {
	File   string                      `json:"file"`
	Symbol extractor.SymbolDeclaration `json:"symbol"`
}

// Result lists unused symbols, sorted by file then line.
type Result struct {
	Unused []UnusedSymbol `json:"unused"`
	// Scanned is the number of symbol declarations examined.
	Scanned int `json:"scanned"`
}

// Reference is one textual occurrence of a symbol name.
type Reference struct {
	File string `json:"file"`
	Line int    `json:"line"`
	// Context is the trimmed source line containing the reference.
	Context string `json:"context"`
}

// contentLoader reads file content at most once per path.
type contentLoader struct {
	src   source.ContentSource
	mu    sync.Mutex
	cache map[string]string
}

func newContentLoader(src source.ContentSource) *contentLoader {
	return &contentLoader{src: src, cache: make(map[string]string)}
}

func (l *contentLoader) load(path string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if text, ok := l.cache[path]; ok {
		return text
	}
	content, err := l.src.Read(path)
	text := ""
	if err == nil {
		text = string(content)
	}
	// Unreadable files cache as empty so every symbol check agrees.
	l.cache[path] = text
	return text
}

// wordPattern matches name as a whole word.
func wordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

// UnusedSymbols scans every declared symbol in the graph. An exported symbol
// is unused when no dependent file mentions its name and the declaring file
// never mentions it outside the declaration line. A non-exported symbol only
// checks the declaring file. Declaration files are skipped: their symbols
// describe external shapes, not project code.
func UnusedSymbols(ctx context.Context, g *graph.ProjectGraph, symbols map[string][]extractor.SymbolDeclaration, src source.ContentSource) (*Result, error) {
	loader := newContentLoader(src)

	files := make([]string, 0, len(symbols))
	scanned := 0
	for path, decls := range symbols {
		if filekind.IsDeclaration(path) {
			continue
		}
		files = append(files, path)
		scanned += len(decls)
	}
	sort.Strings(files)

	// unusedInFile never fails, so per-file errors only carry cancellation.
	perFile, _ := fileproc.ForEachFileWithContext(ctx, files, 0,
		func(path string) ([]UnusedSymbol, error) {
			return unusedInFile(g, path, symbols[path], loader), nil
		},
		nil,
	)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var unused []UnusedSymbol
	for _, batch := range perFile {
		unused = append(unused, batch...)
	}
	sort.Slice(unused, func(i, j int) bool {
		if unused[i].File != unused[j].File {
			return unused[i].File < unused[j].File
		}
		return unused[i].Symbol.StartLine < unused[j].Symbol.StartLine
	})

	return &Result{Unused: unused, Scanned: scanned}, nil
}

func unusedInFile(g *graph.ProjectGraph, path string, decls []extractor.SymbolDeclaration, loader *contentLoader) []UnusedSymbol {
	var dependents []string
	if node, ok := g.Nodes[path]; ok {
		dependents = node.Dependents
	}

	selfLines := strings.Split(loader.load(path), "\n")

	var unused []UnusedSymbol
	for _, decl := range decls {
		pattern := wordPattern(decl.Name)

		if referencedLocally(selfLines, decl, pattern) {
			continue
		}

		used := false
		if decl.Exported {
			for _, dep := range dependents {
				if pattern.MatchString(loader.load(dep)) {
					used = true
					break
				}
			}
		}
		if !used {
			unused = append(unused, UnusedSymbol{File: path, Symbol: decl})
		}
	}
	return unused
}

// referencedLocally reports whether the declaring file mentions the symbol
// outside its declaration line.
func referencedLocally(lines []string, decl extractor.SymbolDeclaration, pattern *regexp.Regexp) bool {
	for i, line := range lines {
		lineNo := i + 1
		if lineNo >= decl.StartLine && lineNo <= decl.EndLine {
			continue
		}
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

// ReferencesTo lists every textual occurrence of symbolName in the declaring
// file and its dependents, sorted by file then line.
func ReferencesTo(ctx context.Context, g *graph.ProjectGraph, file, symbolName string, src source.ContentSource) ([]Reference, error) {
	loader := newContentLoader(src)
	pattern := wordPattern(symbolName)

	targets := []string{file}
	if node, ok := g.Nodes[file]; ok {
		targets = append(targets, node.Dependents...)
	}
	sort.Strings(targets)

	var refs []Reference
	for _, target := range targets {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		for i, line := range strings.Split(loader.load(target), "\n") {
			if pattern.MatchString(line) {
				refs = append(refs, Reference{
					File:    target,
					Line:    i + 1,
					Context: strings.TrimSpace(line),
				})
			}
		}
	}
	return refs, nil
}
