package output

import (
	"fmt"
	"strings"
)

// MarkdownContributorWriter writes contributor reports as Markdown.
type MarkdownContributorWriter struct{}

// Write outputs the contributor report as Markdown.
func (w *MarkdownContributorWriter) Write(report *ContributorReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	stats := computeTeamStats(report)
	rows := buildRows(report, options, stats)

	// Header
	fmt.Fprintln(out, "# Contributor Statistics")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Branch:** %s\n\n", branchLabel(report.Branch))
	label, value := dateRangeLabelAndValue(report.Since, report.Until)
	fmt.Fprintf(out, "**%s:** %s\n\n", label, value)
	fmt.Fprintf(out, "**Total Contributors:** %d\n\n", len(report.Contributors))

	if len(rows) == 0 {
		fmt.Fprintln(out, "No commits found.")
		return nil
	}

	// Table header
	fmt.Fprintln(out, "## Contributors")
	fmt.Fprintln(out)
	if options.Explain {
		fmt.Fprintln(out, "| # | Contributor | Emails | Commits | Added | Deleted | Regex | Lines/Commit | AbsDiff | Scale |")
		fmt.Fprintln(out, "|---|-------------|--------|---------|-------|---------|-------|--------------|---------|-------|")
	} else {
		fmt.Fprintln(out, "| # | Contributor | Emails | Commits | Added | Deleted | Regex |")
		fmt.Fprintln(out, "|---|-------------|--------|---------|-------|---------|-------|")
	}

	// Table rows
	for i, row := range rows {
		emails := make([]string, 0, len(row.Contacts.Emails()))
		for _, e := range row.Contacts.Emails() {
			emails = append(emails, "`"+e+"`")
		}
		if options.Explain {
			fmt.Fprintf(out, "| %d | %s | %s | %d | %d | %d | %d/%d | %d | %d | %.1f |\n",
				i+1, escapeMarkdown(row.Username), strings.Join(emails, ", "),
				row.TotalCommits, row.Additions, row.Deletions,
				row.CommitsMatchingRegex, row.TotalRegexMatches,
				row.LinesPerCommit, row.AbsoluteDiff, row.Scale)
		} else {
			fmt.Fprintf(out, "| %d | %s | %s | %d | %d | %d | %d/%d |\n",
				i+1, escapeMarkdown(row.Username), strings.Join(emails, ", "),
				row.TotalCommits, row.Additions, row.Deletions,
				row.CommitsMatchingRegex, row.TotalRegexMatches)
		}
	}

	if options.Explain {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "**Team %s:** mean %.2f, sd %.2f\n", stats.Metric, stats.Mean, stats.StdDev)
	}

	summaries := false
	for _, row := range rows {
		if row.AISummary == "" {
			continue
		}
		if !summaries {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "## Summaries")
			summaries = true
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "### %s\n\n%s\n", escapeMarkdown(row.Username), row.AISummary)
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
