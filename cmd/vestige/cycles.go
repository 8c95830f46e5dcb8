package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/analyzer/cluster"
	"github.com/urfave/cli/v2"
)

func cyclesCmd() *cli.Command {
	return &cli.Command{
		Name:      "cycles",
		Usage:     "Detect dependency cycles",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "Exit non-zero when cycles are found",
			},
		},
		Action: runCyclesCmd,
	}
}

func runCyclesCmd(c *cli.Context) error {
	run, err := analyze(c)
	if err != nil {
		return err
	}

	cycles := cluster.Cycles(run.result.Graph)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(cycles) == 0 {
		if formatter.Format() == output.FormatText {
			color.Green("No dependency cycles found")
			return nil
		}
		return formatter.Output(cycles)
	}

	var rows [][]string
	for i, cy := range cycles {
		parts := make([]string, len(cy.Files))
		for j, f := range cy.Files {
			parts[j] = relPath(run.root, f)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(cy.Files)-1),
			truncate(strings.Join(parts, " -> "), 100),
		})
	}

	title := fmt.Sprintf("Dependency Cycles (%d)", len(cycles))
	table := output.NewTable(title, []string{"#", "Length", "Cycle"}, rows, nil, cycles)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if c.Bool("fail") {
		return fmt.Errorf("%d dependency cycles found", len(cycles))
	}
	return nil
}
