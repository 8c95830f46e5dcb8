package extractor

// DependencyKind describes the declaration shape a dependency came from.
type DependencyKind string

const (
	// KindStatic is a top-level `import ... from '...'` or
	// `export ... from '...'` declaration.
	KindStatic DependencyKind = "static"
	// KindDynamic is a function-style `import('...')` expression.
	KindDynamic DependencyKind = "dynamic"
	// KindLegacyCall is a CommonJS `require('...')` call.
	KindLegacyCall DependencyKind = "legacy_call"
)

// RawDependency is a dependency declaration as found in file text,
// before resolution.
type RawDependency struct {
	// SourceText is the module specifier, e.g. "./util" or "react".
	SourceText string `json:"source_text"`
	// DeclaringFile is the file the declaration appears in.
	DeclaringFile string `json:"declaring_file"`
	// Line is the 1-based line of the declaration.
	Line int `json:"line"`
	// Kind is the declaration shape.
	Kind DependencyKind `json:"kind"`
	// ImportedMembers are the named bindings, when present.
	ImportedMembers []string `json:"imported_members,omitempty"`
	// IsTypeOnly marks `import type` / `export type ... from` declarations.
	IsTypeOnly bool `json:"is_type_only,omitempty"`
}

// SymbolKind is the declaration form of a detected symbol.
type SymbolKind string

const (
	SymbolFunction  SymbolKind = "function"
	SymbolMethod    SymbolKind = "method"
	SymbolClass     SymbolKind = "class"
	SymbolInterface SymbolKind = "interface"
	SymbolTypeAlias SymbolKind = "type_alias"
)

// SymbolDeclaration is a symbol detected by line-local pattern matching.
// Multi-line signatures are only partially captured; EndLine equals
// StartLine for everything the scanner sees on one line.
type SymbolDeclaration struct {
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	DeclaringFile string     `json:"declaring_file"`
	StartLine     int        `json:"start_line"`
	EndLine       int        `json:"end_line"`
	Exported      bool       `json:"exported"`
	Signature     string     `json:"signature"`
}

// Result is the output of extracting a single file.
type Result struct {
	Dependencies []RawDependency     `json:"dependencies"`
	Symbols      []SymbolDeclaration `json:"symbols"`
}
