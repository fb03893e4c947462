package output

import (
	"time"

	"github.com/masmgr/gitgauge-go/internal/contributor"
	"github.com/masmgr/gitgauge-go/internal/metrics"
)

// Compile-time interface conformance checks.
var (
	_ ContributorReportWriter = (*ConsoleContributorWriter)(nil)
	_ ContributorReportWriter = (*JSONContributorWriter)(nil)
	_ ContributorReportWriter = (*CSVContributorWriter)(nil)
	_ ContributorReportWriter = (*MarkdownContributorWriter)(nil)
	_ ContributorReportWriter = (*CIContributorWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
	// Explain adds the derived metrics (lines per commit, absolute diff, scale).
	Explain bool
}

// ContributorReport holds the results of a contributor analysis.
type ContributorReport struct {
	RepoPath    string
	Branch      string
	Since       *time.Time
	Until       time.Time
	GeneratedAt time.Time
	Grouped     bool
	// Metric is the team statistic the scale column is computed from.
	Metric metrics.Metric
	// Contributors are already sorted.
	Contributors []contributor.Contributor
}

// ContributorReportWriter writes contributor reports.
type ContributorReportWriter interface {
	Write(report *ContributorReport, options OutputOptions) error
}

// NewContributorReportWriter creates a report writer for the specified format.
func NewContributorReportWriter(format OutputFormat) ContributorReportWriter {
	switch format {
	case FormatJSON:
		return &JSONContributorWriter{}
	case FormatCSV:
		return &CSVContributorWriter{}
	case FormatMarkdown:
		return &MarkdownContributorWriter{}
	case FormatCI:
		return &CIContributorWriter{}
	default:
		return &ConsoleContributorWriter{}
	}
}
