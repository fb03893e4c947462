package output

import (
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/masmgr/gitgauge-go/internal/contributor"
	"github.com/masmgr/gitgauge-go/internal/metrics"
)

const (
	reportDateLayout = "2006-01-02"
)

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func dateRangeLabelAndValue(since *time.Time, until time.Time) (string, string) {
	if since != nil {
		return "Period", since.Format(reportDateLayout) + " to " + until.Format(reportDateLayout)
	}
	return "Until", until.Format(reportDateLayout)
}

func formatSinceDate(since *time.Time) *string {
	if since == nil {
		return nil
	}
	formatted := since.Format(reportDateLayout)
	return &formatted
}

func branchLabel(branch string) string {
	if branch == "" {
		return "HEAD"
	}
	return branch
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// teamStats summarizes the report's metric across every contributor,
// including those cut by Top.
type teamStats struct {
	Metric    metrics.Metric
	Mean      float64
	StdDev    float64
	RefPoints [5]float64
	Range     metrics.MinMax
	Points    []metrics.Point
}

func computeTeamStats(report *ContributorReport) teamStats {
	metric := report.Metric
	if metric == "" {
		metric = metrics.MetricCommits
	}
	mean := metrics.Mean(report.Contributors, metric)
	sd := metrics.StdDev(report.Contributors, metric)
	return teamStats{
		Metric:    metric,
		Mean:      mean,
		StdDev:    sd,
		RefPoints: metrics.RefPoints(mean, sd),
		Range:     metrics.Range(report.Contributors, metric),
		Points:    metrics.Distribution(report.Contributors, metric),
	}
}

// contributorRow is a contributor with its derived metrics.
type contributorRow struct {
	contributor.Contributor
	Lines          int
	LinesPerCommit int
	AbsoluteDiff   int
	Scale          float64
}

func buildRows(report *ContributorReport, options OutputOptions, stats teamStats) []contributorRow {
	items := limitTop(report.Contributors, options.Top)
	rows := make([]contributorRow, len(items))
	for i, c := range items {
		rows[i] = contributorRow{
			Contributor:    c,
			Lines:          metrics.TotalLines(c),
			LinesPerCommit: metrics.LinesPerCommit(c),
			AbsoluteDiff:   metrics.AbsoluteDiff(c),
			Scale:          metrics.ScalingFactor(metrics.Value(c, stats.Metric), stats.Mean, stats.StdDev),
		}
	}
	return rows
}

func joinEmails(c contributor.Contact) string {
	return strings.Join(c.Emails(), ", ")
}

// truncateMessage limits msg to maxLen runes, marking the cut with "...".
func truncateMessage(msg string, maxLen int) string {
	if utf8.RuneCountInString(msg) <= maxLen {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:maxLen-3]) + "..."
}
