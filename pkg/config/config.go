package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for vestige.
type Config struct {
	// Analyze controls how the dependency graph is built.
	Analyze AnalyzeConfig `koanf:"analyze"`

	// Exclude defines file exclusion patterns.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Cache controls the on-disk extraction cache.
	Cache CacheConfig `koanf:"cache"`

	// Concurrency controls worker pool sizing.
	Concurrency ConcurrencyConfig `koanf:"concurrency"`

	// Output controls output formatting.
	Output OutputConfig `koanf:"output"`
}

// AnalyzeConfig controls dependency extraction and resolution.
type AnalyzeConfig struct {
	// Extensions is the ordered probe list for extensionless imports.
	Extensions []string `koanf:"extensions"`

	// EntryPoints overrides manifest-declared entry points when non-empty.
	// Paths are relative to the project root.
	EntryPoints []string `koanf:"entry_points"`

	// Aliases maps import prefixes to directories, merged over the alias
	// table read from the compiler configuration file.
	Aliases map[string]string `koanf:"aliases"`

	// Builtins adds names treated as platform builtins.
	Builtins []string `koanf:"builtins"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
	Gitignore  bool     `koanf:"gitignore"`
}

// CacheConfig controls the on-disk extraction result cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
	TTL     int    `koanf:"ttl"` // TTL in hours
}

// ConcurrencyConfig controls worker pool sizing.
type ConcurrencyConfig struct {
	// Jobs is the maximum number of extraction workers. Zero means
	// 2x NumCPU.
	Jobs int `koanf:"jobs"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, yaml, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			Extensions: []string{
				".ts", ".tsx", ".mts", ".cts",
				".js", ".jsx", ".mjs", ".cjs",
			},
			Aliases: map[string]string{},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".map",
			},
			Dirs: []string{
				"node_modules",
				".git",
				".vestige",
				"dist",
				"build",
				"coverage",
				"out",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".vestige/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, merged over defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"vestige.toml",
		"vestige.yaml",
		"vestige.yml",
		"vestige.json",
		".vestige.toml",
		".vestige.yaml",
		".vestige.yml",
		".vestige.json",
	}

	searchDirs := []string{".", ".vestige"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// MatchesExtension reports whether path has one of the configured source
// extensions.
func (c *Config) MatchesExtension(path string) bool {
	// .d.ts and friends end in a configured extension but are declaration
	// files, scanned like any other source.
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Analyze.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
