package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIContributorWriter writes contributor reports as NDJSON (one JSON object per line) for CI pipelines.
type CIContributorWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type              string  `json:"type"`
	TotalContributors int     `json:"totalContributors"`
	TotalCommits      int     `json:"totalCommits"`
	TotalAdditions    int     `json:"totalAdditions"`
	TotalDeletions    int     `json:"totalDeletions"`
	Metric            string  `json:"metric"`
	Mean              float64 `json:"mean"`
	StdDev            float64 `json:"sd"`
}

// CIContributorEntry represents a single contributor in CI output.
type CIContributorEntry struct {
	Type                 string   `json:"type"`
	Username             string   `json:"username"`
	Emails               []string `json:"emails"`
	TotalCommits         int      `json:"totalCommits"`
	Additions            int      `json:"additions"`
	Deletions            int      `json:"deletions"`
	TotalRegexMatches    int      `json:"totalRegexMatches"`
	CommitsMatchingRegex int      `json:"commitsMatchingRegex"`
	Scale                float64  `json:"scale"`
}

// Write outputs the contributor report as NDJSON.
// The summary covers every contributor; Top only limits the entry lines.
func (w *CIContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	stats := computeTeamStats(report)
	rows := buildRows(report, options, stats)

	summary := CISummary{
		Type:              "summary",
		TotalContributors: len(report.Contributors),
		Metric:            string(stats.Metric),
		Mean:              stats.Mean,
		StdDev:            stats.StdDev,
	}
	for _, c := range report.Contributors {
		summary.TotalCommits += c.TotalCommits
		summary.TotalAdditions += c.Additions
		summary.TotalDeletions += c.Deletions
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, row := range rows {
		entry := CIContributorEntry{
			Type:                 "contributor",
			Username:             row.Username,
			Emails:               row.Contacts.Emails(),
			TotalCommits:         row.TotalCommits,
			Additions:            row.Additions,
			Deletions:            row.Deletions,
			TotalRegexMatches:    row.TotalRegexMatches,
			CommitsMatchingRegex: row.CommitsMatchingRegex,
			Scale:                row.Scale,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
