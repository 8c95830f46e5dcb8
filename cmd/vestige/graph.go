package main

import (
	"fmt"
	"sort"

	"github.com/panbanda/vestige/internal/output"
	"github.com/panbanda/vestige/pkg/resolver"
	"github.com/urfave/cli/v2"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"g"},
		Usage:     "Build and display the file dependency graph",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 0,
				Usage: "Show only the N most depended-on files (0 = all)",
			},
			&cli.IntFlag{
				Name:  "top-externals",
				Value: 10,
				Usage: "External packages to list by reference count (0 = none)",
			},
		},
		Action: runGraphCmd,
	}
}

type graphRow struct {
	File       string `json:"file"`
	Internal   int    `json:"internal"`
	External   int    `json:"external"`
	Builtin    int    `json:"builtin"`
	Dependents int    `json:"dependents"`
}

type brokenRef struct {
	File   string `json:"file"`
	Source string `json:"source"`
	Line   int    `json:"line"`
}

type externalCount struct {
	Package string `json:"package"`
	Count   int    `json:"count"`
}

func runGraphCmd(c *cli.Context) error {
	run, err := analyze(c)
	if err != nil {
		return err
	}

	g := run.result.Graph

	var data []graphRow
	var broken []brokenRef
	externals := make(map[string]int)

	for _, path := range g.Paths() {
		node := g.Nodes[path]
		row := graphRow{File: relPath(run.root, path), Dependents: len(node.Dependents)}
		for _, dep := range node.Dependencies {
			switch dep.Kind {
			case resolver.Internal:
				row.Internal++
				if !dep.Exists {
					broken = append(broken, brokenRef{
						File:   relPath(run.root, path),
						Source: dep.Source,
						Line:   dep.Line,
					})
				}
			case resolver.External:
				row.External++
				externals[dep.Source]++
			case resolver.Builtin:
				row.Builtin++
			}
		}
		data = append(data, row)
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Dependents != data[j].Dependents {
			return data[i].Dependents > data[j].Dependents
		}
		return data[i].File < data[j].File
	})

	topExternals := make([]externalCount, 0, len(externals))
	for pkg, count := range externals {
		topExternals = append(topExternals, externalCount{Package: pkg, Count: count})
	}
	sort.Slice(topExternals, func(i, j int) bool {
		if topExternals[i].Count != topExternals[j].Count {
			return topExternals[i].Count > topExternals[j].Count
		}
		return topExternals[i].Package < topExternals[j].Package
	})

	rows := data
	if top := c.Int("top"); top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	report := &output.Report{
		Title: fmt.Sprintf("Dependency Graph (%d files, %d edges)", len(g.Nodes), len(g.Edges)),
		Data: map[string]any{
			"files":         len(g.Nodes),
			"edges":         len(g.Edges),
			"nodes":         data,
			"broken":        broken,
			"top_externals": topExternals,
		},
	}

	var fileRows [][]string
	for _, row := range rows {
		fileRows = append(fileRows, []string{
			truncate(row.File, 60),
			fmt.Sprintf("%d", row.Internal),
			fmt.Sprintf("%d", row.External),
			fmt.Sprintf("%d", row.Builtin),
			fmt.Sprintf("%d", row.Dependents),
		})
	}
	report.Sections = append(report.Sections, output.NewTable("Files",
		[]string{"File", "Internal", "External", "Builtin", "Dependents"},
		fileRows, nil, nil))

	if len(broken) > 0 {
		var brokenRows [][]string
		for _, b := range broken {
			brokenRows = append(brokenRows, []string{
				truncate(b.File, 50),
				fmt.Sprintf("%d", b.Line),
				truncate(b.Source, 50),
			})
		}
		report.Sections = append(report.Sections, output.NewTable(
			fmt.Sprintf("Broken Internal References (%d)", len(broken)),
			[]string{"File", "Line", "Import"},
			brokenRows, nil, nil))
	}

	if limit := c.Int("top-externals"); limit > 0 && len(topExternals) > 0 {
		if len(topExternals) > limit {
			topExternals = topExternals[:limit]
		}
		var extRows [][]string
		for _, e := range topExternals {
			extRows = append(extRows, []string{
				truncate(e.Package, 50),
				fmt.Sprintf("%d", e.Count),
			})
		}
		report.Sections = append(report.Sections, output.NewTable("Top External Packages",
			[]string{"Package", "References"},
			extRows, nil, nil))
	}

	return formatter.Output(report)
}
