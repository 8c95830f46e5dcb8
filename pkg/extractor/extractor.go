// Package extractor scans raw file text for dependency declarations and
// symbol declarations. It is a pattern-based scanner, not a grammar parser:
// extraction is a pure function of file content that never fails, returning
// whatever declarations it can still match on malformed input.
package extractor

import (
	"regexp"
	"strings"
)

var (
	// import defaultName, { a, b as c } from 'mod' / import type { T } from 'mod'
	staticImportRe = regexp.MustCompile(`import\s+(type\s+)?((?:[\w$*,{}]|\s|as)+?)\s*from\s*['"]([^'"\n]+)['"]`)

	// import 'mod' (side-effect only)
	bareImportRe = regexp.MustCompile(`import\s*['"]([^'"\n]+)['"]`)

	// export { a } from 'mod' / export * from 'mod' / export type { T } from 'mod'
	exportFromRe = regexp.MustCompile(`export\s+(type\s+)?(?:\*(?:\s+as\s+[\w$]+)?|\{[^}]*\})\s*from\s*['"]([^'"\n]+)['"]`)

	// require('mod')
	requireRe = regexp.MustCompile(`require\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)

	// import('mod')
	dynamicImportRe = regexp.MustCompile(`import\s*\(\s*['"]([^'"\n]+)['"]\s*\)`)
)

var (
	functionRe  = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`)
	classRe     = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	interfaceRe = regexp.MustCompile(`^\s*(export\s+)?interface\s+([A-Za-z_$][\w$]*)`)
	typeAliasRe = regexp.MustCompile(`^\s*(export\s+)?type\s+([A-Za-z_$][\w$]*)(?:\s*<[^=]*>)?\s*=`)
	arrowFnRe   = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::\s*[^=\n]+)?=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)
	methodRe    = regexp.MustCompile(`^\s+((?:(?:public|private|protected|static|async|readonly|override)\s+)*)([A-Za-z_$][\w$]*)\s*(?:<[^>]*>)?\([^)]*\)\s*(?::\s*[^({\n]+)?\s*\{\s*$`)
)

// methodBlacklist keeps control-flow keywords and constructors from being
// reported as method declarations.
var methodBlacklist = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "constructor": true, "new": true,
	"do": true, "else": true, "try": true, "typeof": true, "await": true,
}

// Extract scans content for dependency declarations and symbol declarations.
// Pure, no I/O. Line numbers are 1-based, computed from match offsets.
func Extract(path string, content []byte) *Result {
	text := string(content)
	result := &Result{
		Dependencies: extractDependencies(path, text),
		Symbols:      extractSymbols(path, text),
	}
	return result
}

func extractDependencies(path, text string) []RawDependency {
	var deps []RawDependency
	// Offsets already claimed by a static or export-from match; keeps the
	// bare-import pattern from re-reporting the same specifier.
	claimed := make(map[int]bool)

	for _, m := range staticImportRe.FindAllStringSubmatchIndex(text, -1) {
		claimed[m[0]] = true
		deps = append(deps, RawDependency{
			SourceText:      text[m[6]:m[7]],
			DeclaringFile:   path,
			Line:            lineAt(text, m[0]),
			Kind:            KindStatic,
			ImportedMembers: parseMembers(text[m[4]:m[5]]),
			IsTypeOnly:      m[2] >= 0,
		})
	}

	for _, m := range exportFromRe.FindAllStringSubmatchIndex(text, -1) {
		claimed[m[0]] = true
		deps = append(deps, RawDependency{
			SourceText:    text[m[4]:m[5]],
			DeclaringFile: path,
			Line:          lineAt(text, m[0]),
			Kind:          KindStatic,
			IsTypeOnly:    m[2] >= 0,
		})
	}

	for _, m := range bareImportRe.FindAllStringSubmatchIndex(text, -1) {
		if claimed[m[0]] {
			continue
		}
		deps = append(deps, RawDependency{
			SourceText:    text[m[2]:m[3]],
			DeclaringFile: path,
			Line:          lineAt(text, m[0]),
			Kind:          KindStatic,
		})
	}

	for _, m := range requireRe.FindAllStringSubmatchIndex(text, -1) {
		deps = append(deps, RawDependency{
			SourceText:    text[m[2]:m[3]],
			DeclaringFile: path,
			Line:          lineAt(text, m[0]),
			Kind:          KindLegacyCall,
		})
	}

	for _, m := range dynamicImportRe.FindAllStringSubmatchIndex(text, -1) {
		deps = append(deps, RawDependency{
			SourceText:    text[m[2]:m[3]],
			DeclaringFile: path,
			Line:          lineAt(text, m[0]),
			Kind:          KindDynamic,
		})
	}

	return deps
}

// extractSymbols uses line-local pattern matching; multi-line signatures are
// only partially captured.
func extractSymbols(path, text string) []SymbolDeclaration {
	var symbols []SymbolDeclaration
	lines := strings.Split(text, "\n")

	add := func(lineNo int, name string, kind SymbolKind, exported bool, signature string) {
		symbols = append(symbols, SymbolDeclaration{
			Name:          name,
			Kind:          kind,
			DeclaringFile: path,
			StartLine:     lineNo,
			EndLine:       lineNo,
			Exported:      exported,
			Signature:     strings.TrimSpace(signature),
		})
	}

	for i, line := range lines {
		lineNo := i + 1

		if m := functionRe.FindStringSubmatch(line); m != nil {
			add(lineNo, m[2], SymbolFunction, m[1] != "", line)
			continue
		}
		if m := classRe.FindStringSubmatch(line); m != nil {
			add(lineNo, m[2], SymbolClass, m[1] != "", line)
			continue
		}
		if m := interfaceRe.FindStringSubmatch(line); m != nil {
			add(lineNo, m[2], SymbolInterface, m[1] != "", line)
			continue
		}
		if m := typeAliasRe.FindStringSubmatch(line); m != nil {
			add(lineNo, m[2], SymbolTypeAlias, m[1] != "", line)
			continue
		}
		if m := arrowFnRe.FindStringSubmatch(line); m != nil {
			add(lineNo, m[2], SymbolFunction, m[1] != "", line)
			continue
		}
		if m := methodRe.FindStringSubmatch(line); m != nil {
			name := m[2]
			if methodBlacklist[name] {
				continue
			}
			exported := !strings.Contains(m[1], "private")
			add(lineNo, name, SymbolMethod, exported, line)
		}
	}

	return symbols
}

// parseMembers extracts bound names from an import clause such as
// "default, { a, b as c }" or "* as ns".
func parseMembers(clause string) []string {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return nil
	}

	var members []string
	seen := make(map[string]bool)
	appendMember := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		members = append(members, name)
	}

	if open := strings.Index(clause, "{"); open >= 0 {
		inner := clause[open+1:]
		if close := strings.Index(inner, "}"); close >= 0 {
			braced := inner[:close]
			for _, part := range strings.Split(braced, ",") {
				// "a as b" imports a, binds b; record the source name
				fields := strings.Fields(strings.TrimSpace(part))
				if len(fields) > 0 {
					appendMember(fields[0])
				}
			}
		}
		clause = clause[:open]
	}

	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "*") {
			// "* as ns" binds ns
			fields := strings.Fields(part)
			if len(fields) == 3 && fields[1] == "as" {
				appendMember(fields[2])
			}
			continue
		}
		appendMember(part)
	}

	return members
}

// lineAt returns the 1-based line containing byte offset.
func lineAt(text string, offset int) int {
	return 1 + strings.Count(text[:offset], "\n")
}
