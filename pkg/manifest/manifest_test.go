package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "name": "demo",
  "main": "dist/index.js",
  "module": "dist/index.mjs",
  "dependencies": {"react": "^18.0.0"},
  "devDependencies": {"vitest": "^1.0.0"}
}`)

	m, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "dist/index.js", m.PrimaryEntry)
	assert.Equal(t, []string{"dist/index.mjs"}, m.AuxiliaryEntries)
	assert.Equal(t, []string{"dist/index.js", "dist/index.mjs"}, m.Entries())

	assert.True(t, m.DeclaresDependency("react"))
	assert.True(t, m.DeclaresDependency("vitest"))
	assert.False(t, m.DeclaresDependency("lodash"))
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNoManifest)
}

func TestLoadManifestBinString(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"bin": "cli.js"}`)

	m, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"cli.js"}, m.AuxiliaryEntries)
	assert.Empty(t, m.PrimaryEntry)
}

func TestLoadManifestBinMap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"bin": {"tool": "bin/tool.js", "other": "bin/other.js"}}`)

	m, err := Load(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bin/tool.js", "bin/other.js"}, m.AuxiliaryEntries)
}

func TestManifestSchemaWarnings(t *testing.T) {
	root := t.TempDir()
	// main should be a string; reported as a warning, not a failure.
	writeFile(t, root, "package.json", `{"name": "demo", "main": 42}`)

	m, err := Load(root)
	require.NoError(t, err)
	assert.NotEmpty(t, m.Warnings)
}

func TestNilManifestEntries(t *testing.T) {
	var m *Manifest
	assert.Nil(t, m.Entries())
	assert.False(t, m.DeclaresDependency("react"))
}

func TestLoadAliases(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{
  // project aliases
  "compilerOptions": {
    "baseUrl": "src",
    "paths": {
      "@app/*": ["app/*"],
      "@shared": ["shared/index.ts"],
    },
  },
}`)

	aliases, err := LoadAliases(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "src", "app"), aliases["@app/"])
	assert.Equal(t, filepath.Join(root, "src", "shared", "index.ts"), aliases["@shared"])
}

func TestLoadAliasesJsconfigFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "jsconfig.json", `{
  "compilerOptions": {
    "paths": {"~/*": ["lib/*"]}
  }
}`)

	aliases, err := LoadAliases(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lib"), aliases["~/"])
}

func TestLoadAliasesAbsent(t *testing.T) {
	aliases, err := LoadAliases(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, aliases)
}

func TestLoadAliasesBlockComments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{
  /* block comment
     spanning lines */
  "compilerOptions": {
    "paths": {"@x/*": ["x/*"]}
  }
}`)

	aliases, err := LoadAliases(root)
	require.NoError(t, err)
	assert.Contains(t, aliases, "@x/")
}

func TestStripJSONCPreservesStrings(t *testing.T) {
	raw := []byte(`{"url": "https://example.com/path", "glob": "a/*"}`)
	cleaned := stripJSONC(raw)
	assert.JSONEq(t, string(raw), string(cleaned))
}
