package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panbanda/vestige/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("export {}\n"), 0o644))
	}
}

func relAll(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestScanDirFindsSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"src/app.ts",
		"src/util.js",
		"src/component.tsx",
		"styles.css",
		"README.md",
	)

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"src/app.ts", "src/util.js", "src/component.tsx"},
		relAll(t, root, files))
}

func TestScanDirSkipsExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"src/app.ts",
		"node_modules/react/index.js",
		"dist/bundle.js",
	)

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.ts"}, relAll(t, root, files))
}

func TestScanDirExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/app.ts", "src/bundle.min.js")

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.ts"}, relAll(t, root, files))
}

func TestScanDirHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/app.ts", "generated/out.ts")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("generated/\n"), 0o644))

	s := NewScanner(config.DefaultConfig())
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.ts"}, relAll(t, root, files))
}

func TestScanDirGitignoreDisabled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/app.ts", "generated/out.ts")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("generated/\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false
	s := NewScanner(cfg)
	files, err := s.ScanDir(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"src/app.ts", "generated/out.ts"}, relAll(t, root, files))
}

func TestScanDirNilConfigUsesDefaults(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.ts")

	s := NewScanner(nil)
	files, err := s.ScanDir(root)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestIsWithinRoot(t *testing.T) {
	assert.True(t, isWithinRoot("/root/sub/file.ts", "/root"))
	assert.True(t, isWithinRoot("/root", "/root"))
	assert.False(t, isWithinRoot("/root2/file.ts", "/root"))
	assert.False(t, isWithinRoot("/other", "/root"))
}
