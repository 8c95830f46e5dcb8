// Package filekind classifies source paths into a closed set of roles.
// Classification is a pure function of the path string.
package filekind

import (
	"path/filepath"
	"strings"
)

// Kind is the role a file plays in the project.
type Kind string

const (
	// Code is a regular runtime source file.
	Code Kind = "code"
	// Test is a test file by suffix or directory convention.
	Test Kind = "test"
	// Declaration is a TypeScript declaration file (.d.ts).
	Declaration Kind = "declaration"
	// Config is a build or tool configuration file.
	Config Kind = "config"
	// Docs is documentation.
	Docs Kind = "docs"
)

var testSuffixes = []string{
	".test.ts", ".test.tsx", ".test.js", ".test.jsx",
	".spec.ts", ".spec.tsx", ".spec.js", ".spec.jsx",
	".test.mts", ".spec.mts", ".test.cts", ".spec.cts",
}

var testDirs = []string{"/test/", "/tests/", "/__tests__/", "/__mocks__/"}

var configBases = map[string]bool{
	"package.json":       true,
	"tsconfig.json":      true,
	"jsconfig.json":      true,
	"webpack.config.js":  true,
	"vite.config.ts":     true,
	"vite.config.js":     true,
	"rollup.config.js":   true,
	"babel.config.js":    true,
	"jest.config.js":     true,
	"jest.config.ts":     true,
	"eslint.config.js":   true,
	"prettier.config.js": true,
}

// Classify returns the Kind for path.
func Classify(path string) Kind {
	norm := filepath.ToSlash(path)
	base := strings.ToLower(filepath.Base(norm))

	if configBases[base] {
		return Config
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".md", ".markdown", ".rst", ".txt":
		return Docs
	}

	if strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.mts") || strings.HasSuffix(base, ".d.cts") {
		return Declaration
	}

	for _, suffix := range testSuffixes {
		if strings.HasSuffix(base, suffix) {
			return Test
		}
	}
	// Leading slash so a top-level test directory matches too.
	lower := "/" + strings.ToLower(norm)
	for _, dir := range testDirs {
		if strings.Contains(lower, dir) {
			return Test
		}
	}

	return Code
}

// IsTest reports whether path is a test file.
func IsTest(path string) bool {
	return Classify(path) == Test
}

// IsDeclaration reports whether path is a declaration file.
func IsDeclaration(path string) bool {
	return Classify(path) == Declaration
}
