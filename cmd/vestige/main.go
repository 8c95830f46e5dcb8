package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/panbanda/vestige/internal/cache"
	"github.com/panbanda/vestige/internal/progress"
	"github.com/panbanda/vestige/internal/scanner"
	"github.com/panbanda/vestige/pkg/analyzer/depgraph"
	"github.com/panbanda/vestige/pkg/config"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func main() {
	app := &cli.App{
		Name:    "vestige",
		Usage:   "Dependency graph and dead code analysis for JavaScript/TypeScript",
		Version: version,
		Description: `Vestige builds a file dependency graph from import declarations and
reports unreachable files, unused symbols, dependency cycles, and
directory cohesion.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"VESTIGE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, yaml, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the on-disk extraction cache",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "Maximum extraction workers (0 = 2x CPU count)",
			},
		},
		Commands: []*cli.Command{
			graphCmd(),
			unusedCmd(),
			symbolsCmd(),
			refsCmd(),
			clustersCmd(),
			cyclesCmd(),
			rankCmd(),
			initCmd(),
			configCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: the --config flag when given,
// otherwise the standard search locations, otherwise defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// analysisRun is the shared result of scanning and analyzing the target paths.
type analysisRun struct {
	result   *depgraph.Result
	analyzer *depgraph.Analyzer
	cfg      *config.Config
	root     string
	files    []string
}

// analyze scans the positional paths and runs the full pipeline. The first
// path is treated as the project root for manifest and alias lookup.
func analyze(c *cli.Context) (*analysisRun, error) {
	return analyzePaths(c, getPaths(c))
}

func analyzePaths(c *cli.Context, paths []string) (*analysisRun, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(paths[0])
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", paths[0], err)
	}

	scan := scanner.NewScanner(cfg)
	var files []string
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}

	cacheEnabled := cfg.Cache.Enabled && !c.Bool("no-cache")
	diskCache, err := cache.New(filepath.Join(root, cfg.Cache.Dir), cfg.Cache.TTL, cacheEnabled)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	a := depgraph.New(cfg,
		depgraph.WithDiskCache(diskCache),
		depgraph.WithJobs(c.Int("jobs")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker := progress.NewTracker("Building dependency graph...", len(files))
	result, err := a.Analyze(progress.WithTracker(ctx, tracker), root, files)
	if err != nil {
		tracker.FinishError(err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	if c.Bool("verbose") {
		for _, warning := range result.Warnings {
			color.Yellow("warning: %v", warning)
		}
	}

	return &analysisRun{
		result:   result,
		analyzer: a,
		cfg:      cfg,
		root:     root,
		files:    files,
	}, nil
}

// relPath shortens an absolute file path for display.
func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !filepath.IsAbs(rel) {
		return rel
	}
	return path
}
