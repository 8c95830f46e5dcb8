package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/analyzer/callgraph"
	"github.com/urfave/cli/v2"
)

func refsCmd() *cli.Command {
	return &cli.Command{
		Name:      "refs",
		Usage:     "List textual references to a symbol declared in a file",
		ArgsUsage: "<file> <symbol>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Value: ".",
				Usage: "Project root to analyze",
			},
		},
		Action: runRefsCmd,
	}
}

func runRefsCmd(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: vestige refs <file> <symbol>")
	}
	file, symbol := c.Args().Get(0), c.Args().Get(1)

	run, err := analyzePaths(c, []string{c.String("root")})
	if err != nil {
		return err
	}

	absFile, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("invalid path %s: %w", file, err)
	}
	if _, ok := run.result.Graph.Nodes[filepath.Clean(absFile)]; !ok {
		color.Yellow("File %s is not part of the analyzed project", file)
		return nil
	}

	refs, err := callgraph.ReferencesTo(c.Context, run.result.Graph, filepath.Clean(absFile), symbol, run.analyzer.Source())
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, ref := range refs {
		rows = append(rows, []string{
			truncate(relPath(run.root, ref.File), 50),
			fmt.Sprintf("%d", ref.Line),
			truncate(ref.Context, 70),
		})
	}

	title := fmt.Sprintf("References to %s (%d)", symbol, len(refs))
	table := output.NewTable(title, []string{"File", "Line", "Context"}, rows, nil, refs)
	return formatter.Output(table)
}
