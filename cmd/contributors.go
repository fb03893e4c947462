package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitgauge-go/internal/analysis"
	"github.com/masmgr/gitgauge-go/internal/contributor"
	"github.com/masmgr/gitgauge-go/internal/summary"
)

// ContributorsCmd returns the contributors command.
func ContributorsCmd() *cli.Command {
	flags := append(repoFlags(), reportFlags()...)

	return &cli.Command{
		Name:    "contributors",
		Aliases: []string{"stats"},
		Usage:   "Aggregate commit, line and message-pattern statistics per contributor",
		Flags:   flags,
		Action:  contributorsAction,
	}
}

func contributorsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	cfg := ctx.Config

	maxSubjects := cfg.Summary.MaxSubjects
	if maxSubjects == 0 {
		maxSubjects = -1
	}

	contributors, err := analysis.GetContributorInfo(c.Context, ctx.RepoPath, analysis.Options{
		Branch:      ctx.Branch,
		DateRange:   ctx.DateRange,
		Regex:       buildPattern(c, cfg),
		Include:     cfg.Filters.Include,
		Exclude:     cfg.Filters.Exclude,
		Workers:     cfg.Analysis.Workers,
		MaxSubjects: maxSubjects,
		Logger:      ctx.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze repository: %w", err)
	}

	contributors, grouped, err := regroup(ctx, contributors)
	if err != nil {
		return err
	}

	if contributors, err = summarize(c, ctx, contributors); err != nil {
		return err
	}

	return writeContributorReport(c, ctx, contributors, grouped)
}

func summarize(c *cli.Context, ctx *CommandContext, contributors map[string]contributor.Contributor) (map[string]contributor.Contributor, error) {
	line := c.String("summarize-cmd")
	if line == "" {
		return contributors, nil
	}
	s, err := summary.NewCommandSummarizer(line)
	if err != nil {
		return nil, err
	}

	ctx.Logger.WithField("contributors", len(contributors)).Debug("summarizing commit subjects")
	filled, err := summary.Fill(c.Context, s, contributors, ctx.Config.Summary.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize contributors: %w", err)
	}
	return filled, nil
}
