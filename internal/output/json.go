package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/masmgr/gitgauge-go/internal/contributor"
	"github.com/masmgr/gitgauge-go/internal/metrics"
)

// JSONContributorWriter writes contributor reports as JSON.
type JSONContributorWriter struct{}

// JSONContributorReport is the JSON output structure for a contributor analysis.
type JSONContributorReport struct {
	RepoPath          string            `json:"repo"`
	Branch            string            `json:"branch"`
	Since             *string           `json:"since,omitempty"`
	Until             string            `json:"until"`
	GeneratedAt       string            `json:"generatedAt"`
	Grouped           bool              `json:"grouped"`
	TotalContributors int               `json:"totalContributors"`
	Team              JSONTeamStats     `json:"team"`
	Contributors      []JSONContributor `json:"contributors"`
}

// JSONTeamStats holds the team distribution of the report metric.
type JSONTeamStats struct {
	Metric    metrics.Metric `json:"metric"`
	Mean      float64        `json:"mean"`
	StdDev    float64        `json:"sd"`
	RefPoints [5]float64     `json:"refPoints"`
	Range     metrics.MinMax `json:"range"`
	// Distribution is only filled in explain mode.
	Distribution []metrics.Point `json:"distribution,omitempty"`
}

// JSONContributor is a contributor in its wire shape plus optional derived metrics.
type JSONContributor struct {
	contributor.Contributor
	Metrics *JSONContributorMetrics `json:"metrics,omitempty"`
}

// JSONContributorMetrics holds the derived metrics of one contributor.
type JSONContributorMetrics struct {
	TotalLines     int     `json:"totalLines"`
	LinesPerCommit int     `json:"linesPerCommit"`
	AbsoluteDiff   int     `json:"absoluteDiff"`
	Scale          float64 `json:"scale"`
}

// Write outputs the contributor report as JSON.
func (w *JSONContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	stats := computeTeamStats(report)
	rows := buildRows(report, options, stats)

	items := make([]JSONContributor, len(rows))
	for i, row := range rows {
		item := JSONContributor{Contributor: row.Contributor}
		if options.Explain {
			item.Metrics = &JSONContributorMetrics{
				TotalLines:     row.Lines,
				LinesPerCommit: row.LinesPerCommit,
				AbsoluteDiff:   row.AbsoluteDiff,
				Scale:          row.Scale,
			}
		}
		items[i] = item
	}

	team := JSONTeamStats{
		Metric:    stats.Metric,
		Mean:      stats.Mean,
		StdDev:    stats.StdDev,
		RefPoints: stats.RefPoints,
		Range:     stats.Range,
	}
	if options.Explain {
		team.Distribution = stats.Points
	}

	jsonReport := JSONContributorReport{
		RepoPath:          report.RepoPath,
		Branch:            report.Branch,
		Since:             formatSinceDate(report.Since),
		Until:             report.Until.Format(reportDateLayout),
		GeneratedAt:       report.GeneratedAt.Format(time.RFC3339),
		Grouped:           report.Grouped,
		TotalContributors: len(report.Contributors),
		Team:              team,
		Contributors: items,
	}

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return writeJSON(out, jsonReport)
}

func writeJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
