package output

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleContributorWriter writes contributor reports to the console.
type ConsoleContributorWriter struct{}

// Write outputs the contributor report as a table.
func (w *ConsoleContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	stats := computeTeamStats(report)
	rows := buildRows(report, options, stats)

	title := "Contributor Statistics"
	if report.Grouped {
		title = "Contributor Statistics (grouped)"
	}
	color.New(color.FgGreen).Fprintln(out, title)
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Branch: %s\n", branchLabel(report.Branch))
	label, value := dateRangeLabelAndValue(report.Since, report.Until)
	fmt.Fprintf(out, "%s: %s\n", label, value)
	fmt.Fprintf(out, "Total contributors: %d\n\n", len(report.Contributors))

	if len(rows) == 0 {
		fmt.Fprintln(out, "No commits found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if options.Explain {
		fmt.Fprintln(tw, "#\tContributor\tEmails\tCommits\tAdded\tDeleted\tRegex\tLines/Commit\tAbsDiff\tScale")
	} else {
		fmt.Fprintln(tw, "#\tContributor\tEmails\tCommits\tAdded\tDeleted\tRegex")
	}

	for i, row := range rows {
		if options.Explain {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d/%d\t%d\t%d\t%s\n",
				i+1,
				row.Username,
				truncateMessage(joinEmails(row.Contacts), 40),
				row.TotalCommits,
				row.Additions,
				row.Deletions,
				row.CommitsMatchingRegex,
				row.TotalRegexMatches,
				row.LinesPerCommit,
				row.AbsoluteDiff,
				scaleColor(row.Scale)("%.1f", row.Scale),
			)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d/%d\n",
				i+1,
				row.Username,
				truncateMessage(joinEmails(row.Contacts), 40),
				row.TotalCommits,
				row.Additions,
				row.Deletions,
				row.CommitsMatchingRegex,
				row.TotalRegexMatches,
			)
		}
	}

	tw.Flush()

	if options.Explain {
		fmt.Fprintf(out, "\nTeam %s: mean %.2f, sd %.2f\n", stats.Metric, stats.Mean, stats.StdDev)
		fmt.Fprintf(out, "Range: %.2f to %.2f\n", stats.Range.Min, stats.Range.Max)
	}

	return nil
}

func scaleColor(scale float64) func(string, ...interface{}) string {
	switch {
	case scale > 1:
		return color.GreenString
	case scale < 1:
		return color.YellowString
	default:
		return fmt.Sprintf
	}
}
