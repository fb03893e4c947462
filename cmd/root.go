package cmd

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitgauge-go/config"
	"github.com/masmgr/gitgauge-go/internal/git"
	"github.com/masmgr/gitgauge-go/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitgauge",
		Usage:   "Contributor statistics for Git repositories",
		Version: "1.0.0",
		Commands: []*cli.Command{
			ContributorsCmd(),
			GroupCmd(),
			BranchesCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging on stderr",
			},
		},
	}
}

// Common flags shared by the report commands
func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of contributors to show (0 for all)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "explain",
			Usage: "Show derived metrics (lines per commit, absolute diff, scale)",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort key (commits, lines, additions, deletions, name)",
		},
		&cli.StringFlag{
			Name:  "metric",
			Usage: "Team metric for the scale column (commits, commit_size, absolute_diff)",
		},
		&cli.StringFlag{
			Name:    "groups",
			Aliases: []string{"g"},
			Usage:   "Group definition file (JSON or YAML) to regroup contributors by email",
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "Regroup policy for contributors in several groups (every, first)",
		},
	}
}

// Flags shared by commands that walk a repository
func repoFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "Count commits since this date (YYYY-MM-DD, inclusive)",
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "Count commits until this date (YYYY-MM-DD, inclusive)",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch to analyze (local name or remote-tracking name such as origin/main)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "regex",
			Usage: "Count matches of this regex in commit messages",
		},
		&cli.StringFlag{
			Name:    "words",
			Aliases: []string{"w"},
			Usage:   "Comma-separated words to count in commit messages, ie: \"fixes,closed\"",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Parallel diff workers (0 for one per CPU)",
		},
		&cli.StringFlag{
			Name:  "summarize-cmd",
			Usage: "Command that reads commit subjects on stdin and prints a summary",
		},
	}
}

// parseDateFlag parses a date string flag.
func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

// buildDateRange converts the since/until days into inclusive commit-time bounds.
// The until day is included up to its last second. Nil when neither is set.
func buildDateRange(since, until *time.Time) (*git.DateRange, error) {
	if since == nil && until == nil {
		return nil, nil
	}
	dr := &git.DateRange{Start: math.MinInt64, End: math.MaxInt64}
	if since != nil {
		dr.Start = since.Unix()
	}
	if until != nil {
		dr.End = until.Add(24*time.Hour).Unix() - 1
	}
	if dr.Start > dr.End {
		return nil, fmt.Errorf("since (%s) is after until (%s)", since.Format("2006-01-02"), until.Format("2006-01-02"))
	}
	return dr, nil
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) output.OutputFormat {
	switch s {
	case "json":
		return output.FormatJSON
	case "csv":
		return output.FormatCSV
	case "markdown", "md":
		return output.FormatMarkdown
	case "ci", "ndjson":
		return output.FormatCI
	default:
		return output.FormatConsole
	}
}

// buildPattern returns the message pattern from --words, --regex or the config.
func buildPattern(c *cli.Context, cfg *config.Config) string {
	if words := c.String("words"); words != "" {
		return convertToRegex(words)
	}
	if regexStr := c.String("regex"); regexStr != "" {
		return regexStr
	}
	return cfg.Analysis.Pattern
}

// convertToRegex converts a comma-separated word list to a regex pattern.
func convertToRegex(words string) string {
	parts := strings.Split(words, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tokens = append(tokens, regexp.QuoteMeta(p))
	}
	return strings.Join(tokens, "|")
}

// loadConfig loads configuration from file or defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if groups := c.String("groups"); groups != "" {
		cfg.Grouping.DefinitionPath = groups
	}
	if policy := c.String("policy"); policy != "" {
		cfg.Grouping.Policy = policy
	}
	if sortKey := c.String("sort"); sortKey != "" {
		cfg.Report.Sort = sortKey
	}
	if metric := c.String("metric"); metric != "" {
		cfg.Report.Metric = metric
	}
	if c.IsSet("top") {
		cfg.Report.Top = c.Int("top")
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Analysis.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newLogger builds the stderr logger; --verbose enables debug output.
func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
