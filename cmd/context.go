package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitgauge-go/config"
	"github.com/masmgr/gitgauge-go/internal/git"
	"github.com/masmgr/gitgauge-go/internal/metrics"
	"github.com/masmgr/gitgauge-go/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across the report commands.
type CommandContext struct {
	Config    *config.Config
	Logger    *logrus.Logger
	RepoPath  string
	Branch    string
	Since     *time.Time
	Until     time.Time
	DateRange *git.DateRange
}

// NewCommandContext creates a context from CLI flags.
// It performs configuration loading and date parsing.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	since, err := parseDateFlag(c.String("since"))
	if err != nil {
		return nil, fmt.Errorf("invalid since date: %w", err)
	}
	until, err := parseDateFlag(c.String("until"))
	if err != nil {
		return nil, fmt.Errorf("invalid until date: %w", err)
	}
	dateRange, err := buildDateRange(since, until)
	if err != nil {
		return nil, err
	}

	untilTime := time.Now()
	if until != nil {
		untilTime = *until
	}

	branch := c.String("branch")
	if branch == "" {
		branch = cfg.Analysis.DefaultBranch
	}

	return &CommandContext{
		Config:    cfg,
		Logger:    newLogger(c),
		RepoPath:  c.String("repo"),
		Branch:    branch,
		Since:     since,
		Until:     untilTime,
		DateRange: dateRange,
	}, nil
}

// OutputOptions creates OutputOptions from CLI flags and the merged config.
func (ctx *CommandContext) OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Top:        ctx.Config.Report.Top,
		OutputPath: c.String("output"),
		Explain:    c.Bool("explain"),
	}
}

// Metric returns the configured team metric.
func (ctx *CommandContext) Metric() metrics.Metric {
	m, _ := metrics.ParseMetric(ctx.Config.Report.Metric)
	return m
}

// SortKey returns the configured sort key.
func (ctx *CommandContext) SortKey() output.SortKey {
	k, _ := output.ParseSortKey(ctx.Config.Report.Sort)
	return k
}
