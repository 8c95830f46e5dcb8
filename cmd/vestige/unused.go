package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/analyzer/reach"
	"github.com/urfave/cli/v2"
)

func unusedCmd() *cli.Command {
	return &cli.Command{
		Name:      "unused",
		Aliases:   []string{"u"},
		Usage:     "Find files unreachable from any entry point",
		ArgsUsage: "[path...]",
		Action:    runUnusedCmd,
	}
}

func runUnusedCmd(c *cli.Context) error {
	run, err := analyze(c)
	if err != nil {
		return err
	}

	result := reach.UnreachedFiles(run.result.Graph)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if result.EntryFallback && formatter.Format() == output.FormatText {
		color.Yellow("No entry points declared; every file was treated as an entry point.")
		color.Yellow("Declare \"main\" in package.json or entry_points in the config.")
	}

	var rows [][]string
	for _, path := range result.Unreached {
		rows = append(rows, []string{truncate(relPath(run.root, path), 80)})
	}

	title := fmt.Sprintf("Unreachable Files (%d of %d)", len(result.Unreached), result.Total)
	footer := []string{fmt.Sprintf("%d reached, %d unreached", result.Reached, len(result.Unreached))}
	table := output.NewTable(title, []string{"File"}, rows, footer, result)
	return formatter.Output(table)
}
