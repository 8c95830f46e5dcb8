package main

import (
	"fmt"

	"github.com/panbanda/vestige/internal/output"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Show the resolved configuration",
		Action: runConfigCmd,
	}
}

func runConfigCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatText {
		content, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = formatter.Writer().Write(content)
		return err
	}
	return formatter.Output(cfg)
}
