package main

import (
	"fmt"

	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/analyzer/cluster"
	"github.com/urfave/cli/v2"
)

func clustersCmd() *cli.Command {
	return &cli.Command{
		Name:      "clusters",
		Usage:     "Measure cohesion and coupling per directory",
		ArgsUsage: "[path...]",
		Action:    runClustersCmd,
	}
}

func runClustersCmd(c *cli.Context) error {
	run, err := analyze(c)
	if err != nil {
		return err
	}

	clusters := cluster.Clusters(run.result.Graph, run.root)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, cl := range clusters {
		cohesion := fmt.Sprintf("%.2f", cl.Cohesion)
		if formatter.Colored() {
			cohesion = output.ConfidenceColor(cl.Cohesion, cohesion)
		}
		rows = append(rows, []string{
			truncate(cl.Name, 40),
			fmt.Sprintf("%d", len(cl.Files)),
			fmt.Sprintf("%d", cl.InternalEdges),
			fmt.Sprintf("%d", cl.OutgoingEdges),
			cohesion,
			fmt.Sprintf("%.2f", cl.Coupling),
		})
	}

	title := fmt.Sprintf("Directory Clusters (%d)", len(clusters))
	table := output.NewTable(title,
		[]string{"Cluster", "Files", "Internal", "Outgoing", "Cohesion", "Coupling"},
		rows, nil, clusters)
	return formatter.Output(table)
}
