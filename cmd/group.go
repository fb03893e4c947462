package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitgauge-go/internal/output"
)

// GroupCmd returns the group command.
func GroupCmd() *cli.Command {
	flags := append(reportFlags(),
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    "Contributors JSON exported by `contributors --format json`",
			Required: true,
		},
	)

	return &cli.Command{
		Name:   "group",
		Usage:  "Regroup previously exported contributors under a group definition",
		Flags:  flags,
		Action: groupAction,
	}
}

func groupAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	if ctx.Config.Grouping.DefinitionPath == "" {
		return fmt.Errorf("a group definition is required (--groups or grouping.definition in the config)")
	}

	contributors, err := output.LoadContributors(c.String("input"))
	if err != nil {
		return err
	}

	grouped, _, err := regroup(ctx, contributors)
	if err != nil {
		return err
	}
	return writeContributorReport(c, ctx, grouped, true)
}
