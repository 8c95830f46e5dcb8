package main

import (
	"fmt"

	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/analyzer/callgraph"
	"github.com/urfave/cli/v2"
)

func symbolsCmd() *cli.Command {
	return &cli.Command{
		Name:      "symbols",
		Aliases:   []string{"s"},
		Usage:     "Find declared symbols that nothing references",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "exported-only",
				Usage: "Show only exported symbols",
			},
		},
		Action: runSymbolsCmd,
	}
}

func runSymbolsCmd(c *cli.Context) error {
	run, err := analyze(c)
	if err != nil {
		return err
	}

	result, err := callgraph.UnusedSymbols(c.Context, run.result.Graph, run.result.Symbols, run.analyzer.Source())
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, u := range result.Unused {
		if c.Bool("exported-only") && !u.Symbol.Exported {
			continue
		}
		exported := ""
		if u.Symbol.Exported {
			exported = "yes"
		}
		rows = append(rows, []string{
			truncate(relPath(run.root, u.File), 50),
			fmt.Sprintf("%d", u.Symbol.StartLine),
			u.Symbol.Name,
			string(u.Symbol.Kind),
			exported,
		})
	}

	title := fmt.Sprintf("Unused Symbols (%d of %d scanned)", len(result.Unused), result.Scanned)
	table := output.NewTable(title,
		[]string{"File", "Line", "Symbol", "Kind", "Exported"},
		rows, nil, result)
	return formatter.Output(table)
}
