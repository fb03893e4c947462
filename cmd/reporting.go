package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitgauge-go/internal/analysis"
	"github.com/masmgr/gitgauge-go/internal/contributor"
	"github.com/masmgr/gitgauge-go/internal/grouping"
	"github.com/masmgr/gitgauge-go/internal/output"
)

// regroup applies the configured group definition, if any.
// It reports whether the contributors were regrouped.
func regroup(ctx *CommandContext, contributors map[string]contributor.Contributor) (map[string]contributor.Contributor, bool, error) {
	path := ctx.Config.Grouping.DefinitionPath
	if path == "" {
		return contributors, false, nil
	}

	def, err := grouping.LoadDefinition(path)
	if err != nil {
		return nil, false, err
	}
	policy, err := grouping.ParsePolicy(ctx.Config.Grouping.Policy)
	if err != nil {
		return nil, false, err
	}

	ctx.Logger.WithField("groups", len(def.Groups)).WithField("policy", policy.String()).Debug("regrouping contributors")
	grouped := analysis.GroupContributorsByConfig(def, contributors, policy)
	if shadowed := grouping.Shadowed(def, contributors, grouped); len(shadowed) > 0 {
		ctx.Logger.WithField("contributors", shadowed).Warn("ungrouped contributors replaced by a group of the same name")
	}
	return grouped, true, nil
}

func writeContributorReport(c *cli.Context, ctx *CommandContext, contributors map[string]contributor.Contributor, grouped bool) error {
	report := &output.ContributorReport{
		RepoPath:     ctx.RepoPath,
		Branch:       ctx.Branch,
		Since:        ctx.Since,
		Until:        ctx.Until,
		GeneratedAt:  time.Now(),
		Grouped:      grouped,
		Metric:       ctx.Metric(),
		Contributors: output.SortContributors(contributors, ctx.SortKey()),
	}

	opts := ctx.OutputOptions(c)
	writer := output.NewContributorReportWriter(opts.Format)
	if err := writer.Write(report, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
