package main

import (
	"fmt"

	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/analyzer/rank"
	"github.com/urfave/cli/v2"
)

func rankCmd() *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Usage:     "Rank files by structural importance (PageRank)",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Show only the N highest-ranked files (0 = all)",
			},
		},
		Action: runRankCmd,
	}
}

func runRankCmd(c *cli.Context) error {
	run, err := analyze(c)
	if err != nil {
		return err
	}

	result := rank.Rank(run.result.Graph)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	ranks := result.Ranks
	if top := c.Int("top"); top > 0 && len(ranks) > top {
		ranks = ranks[:top]
	}

	var rows [][]string
	for i, r := range ranks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			truncate(relPath(run.root, r.Path), 60),
			fmt.Sprintf("%.4f", r.Score),
			fmt.Sprintf("%d", r.Dependents),
		})
	}

	var footer []string
	if result.StronglyConnected > 0 {
		footer = []string{fmt.Sprintf("%d mutually-dependent groups, largest %d files",
			result.StronglyConnected, result.LargestComponent)}
	}

	title := fmt.Sprintf("File Importance (top %d of %d)", len(ranks), len(result.Ranks))
	table := output.NewTable(title, []string{"#", "File", "Score", "Dependents"}, rows, footer, result)
	return formatter.Output(table)
}
