package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitgauge-go/internal/analysis"
	"github.com/masmgr/gitgauge-go/internal/output"
)

// BranchesCmd returns the branches command.
func BranchesCmd() *cli.Command {
	return &cli.Command{
		Name:  "branches",
		Usage: "List branch names, current branch first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Path to Git repository",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (console, json)",
				Value:   "console",
			},
		},
		Action: branchesAction,
	}
}

func branchesAction(c *cli.Context) error {
	names, err := analysis.BranchNames(c.String("repo"))
	if err != nil {
		return err
	}

	out := c.App.Writer
	if getOutputFormat(c.String("format")) == output.FormatJSON {
		if names == nil {
			names = []string{}
		}
		data, err := json.Marshal(names)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	}

	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
