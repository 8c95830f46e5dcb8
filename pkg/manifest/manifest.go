// Package manifest reads the project manifest (package.json) and the
// compiler configuration (tsconfig.json / jsconfig.json), exposing declared
// entry fields and the alias-to-directory table. A missing manifest is not
// an error for callers: they fall back to built-in defaults.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrNoManifest indicates no package.json was found at the project root.
var ErrNoManifest = errors.New("no manifest found")

// packageSchema is the shape check applied to package.json. Violations are
// reported as warnings, never failures.
const packageSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"version": {"type": "string"},
		"main": {"type": "string"},
		"module": {"type": "string"},
		"bin": {
			"anyOf": [
				{"type": "string"},
				{"type": "object", "additionalProperties": {"type": "string"}}
			]
		},
		"dependencies": {"type": "object", "additionalProperties": {"type": "string"}},
		"devDependencies": {"type": "object", "additionalProperties": {"type": "string"}}
	}
}`

// Manifest is the parsed project manifest.
type Manifest struct {
	Name string `json:"name,omitempty"`
	// PrimaryEntry is the main executable entry, when declared.
	PrimaryEntry string `json:"primary_entry,omitempty"`
	// AuxiliaryEntries are additional executable entries (bin targets,
	// module entry).
	AuxiliaryEntries []string          `json:"auxiliary_entries,omitempty"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"dev_dependencies,omitempty"`
	// Warnings are non-fatal findings from schema validation.
	Warnings []string `json:"warnings,omitempty"`
	// Source is the manifest path that was read.
	Source string `json:"source,omitempty"`
}

// Entries returns all declared entry points, primary first.
func (m *Manifest) Entries() []string {
	if m == nil {
		return nil
	}
	var entries []string
	if m.PrimaryEntry != "" {
		entries = append(entries, m.PrimaryEntry)
	}
	entries = append(entries, m.AuxiliaryEntries...)
	return entries
}

// DeclaresDependency reports whether name is declared in dependencies or
// devDependencies.
func (m *Manifest) DeclaresDependency(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// Load reads package.json from root. Returns ErrNoManifest when absent.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, "package.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoManifest
		}
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	m := &Manifest{
		Name:            k.String("name"),
		Dependencies:    k.StringMap("dependencies"),
		DevDependencies: k.StringMap("devDependencies"),
		Source:          path,
	}

	m.PrimaryEntry = k.String("main")
	if mod := k.String("module"); mod != "" && mod != m.PrimaryEntry {
		if m.PrimaryEntry == "" {
			m.PrimaryEntry = mod
		} else {
			m.AuxiliaryEntries = append(m.AuxiliaryEntries, mod)
		}
	}
	m.AuxiliaryEntries = append(m.AuxiliaryEntries, binEntries(k.Get("bin"))...)

	m.Warnings = validate(raw)
	return m, nil
}

// binEntries flattens the bin field, which may be a string or a name->path map.
func binEntries(bin any) []string {
	switch v := bin.(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case map[string]any:
		var entries []string
		for _, target := range v {
			if s, ok := target.(string); ok && s != "" {
				entries = append(entries, s)
			}
		}
		return entries
	}
	return nil
}

// validate checks raw manifest bytes against packageSchema and returns
// violations as warning strings.
func validate(raw []byte) []string {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(packageSchema))
	if err != nil {
		return nil
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("package.schema.json", schemaDoc); err != nil {
		return nil
	}
	schema, err := compiler.Compile("package.schema.json")
	if err != nil {
		return nil
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return []string{fmt.Sprintf("manifest is not valid JSON: %v", err)}
	}
	if err := schema.Validate(instance); err != nil {
		return []string{fmt.Sprintf("manifest shape: %v", err)}
	}
	return nil
}

// LoadAliases reads the alias table from tsconfig.json or jsconfig.json
// under root. Returns an empty table when neither exists. Comments and
// trailing commas, both common in compiler configs, are tolerated.
func LoadAliases(root string) (map[string]string, error) {
	for _, name := range []string{"tsconfig.json", "jsconfig.json"} {
		path := filepath.Join(root, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		aliases, err := parseAliases(root, raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return aliases, nil
	}
	return map[string]string{}, nil
}

func parseAliases(root string, raw []byte) (map[string]string, error) {
	cleaned := stripJSONC(raw)

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(cleaned), kjson.Parser()); err != nil {
		return nil, err
	}

	baseURL := k.String("compilerOptions.baseUrl")
	baseDir := filepath.Join(root, filepath.FromSlash(baseURL))

	aliases := make(map[string]string)
	paths, ok := k.Get("compilerOptions.paths").(map[string]any)
	if !ok {
		return aliases, nil
	}

	for pattern, targets := range paths {
		list, ok := targets.([]any)
		if !ok || len(list) == 0 {
			continue
		}
		target, ok := list[0].(string)
		if !ok {
			continue
		}
		// "@app/*" -> ["src/app/*"] maps the prefix "@app/" to src/app.
		prefix := strings.TrimSuffix(pattern, "*")
		dir := strings.TrimSuffix(target, "*")
		aliases[prefix] = filepath.Join(baseDir, filepath.FromSlash(dir))
	}

	return aliases, nil
}

// stripJSONC removes // and /* */ comments and trailing commas so the
// result parses as strict JSON. String contents are preserved.
func stripJSONC(raw []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(raw))

	inString := false
	inLine := false
	inBlock := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				out.WriteByte(c)
			}
		case inBlock:
			if c == '*' && i+1 < len(raw) && raw[i+1] == '/' {
				inBlock = false
				i++
			}
		case inString:
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == '/' && i+1 < len(raw) && raw[i+1] == '/':
			inLine = true
			i++
		case c == '/' && i+1 < len(raw) && raw[i+1] == '*':
			inBlock = true
			i++
		default:
			out.WriteByte(c)
		}
	}

	return stripTrailingCommas(out.Bytes())
}

func stripTrailingCommas(raw []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(raw))

	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}
		if c == ',' {
			// Drop the comma when the next non-space byte closes a scope.
			j := i + 1
			for j < len(raw) && (raw[j] == ' ' || raw[j] == '\t' || raw[j] == '\n' || raw[j] == '\r') {
				j++
			}
			if j < len(raw) && (raw[j] == '}' || raw[j] == ']') {
				continue
			}
		}
		out.WriteByte(c)
	}

	return out.Bytes()
}
