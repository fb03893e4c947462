package output

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVContributorWriter writes contributor reports as CSV.
type CSVContributorWriter struct{}

// Write outputs the contributor report as CSV.
func (w *CSVContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	writer := csv.NewWriter(out)

	stats := computeTeamStats(report)
	rows := buildRows(report, options, stats)

	headers := []string{"Username", "Emails", "TotalCommits", "Additions", "Deletions",
		"TotalRegexMatches", "CommitsMatchingRegex", "Initials", "ProfileColour", "AISummary"}
	if options.Explain {
		headers = append(headers, "TotalLines", "LinesPerCommit", "AbsoluteDiff", "Scale")
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Username,
			strings.Join(row.Contacts.Emails(), ";"),
			fmt.Sprintf("%d", row.TotalCommits),
			fmt.Sprintf("%d", row.Additions),
			fmt.Sprintf("%d", row.Deletions),
			fmt.Sprintf("%d", row.TotalRegexMatches),
			fmt.Sprintf("%d", row.CommitsMatchingRegex),
			row.UsernameInitials,
			row.ProfileColour,
			row.AISummary,
		}
		if options.Explain {
			record = append(record,
				fmt.Sprintf("%d", row.Lines),
				fmt.Sprintf("%d", row.LinesPerCommit),
				fmt.Sprintf("%d", row.AbsoluteDiff),
				fmt.Sprintf("%.1f", row.Scale),
			)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
