package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCIContributorWriter_Write(t *testing.T) {
	report := testReport()

	tmpFile := t.TempDir() + "/ci_output.ndjson"
	options := OutputOptions{Format: FormatCI, OutputPath: tmpFile}

	writer := &CIContributorWriter{}
	if err := writer.Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 { // 1 summary + 3 contributors
		t.Fatalf("expected 4 lines, got %d: %s", len(lines), string(data))
	}

	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	expected := CISummary{
		Type:              "summary",
		TotalContributors: 3,
		TotalCommits:      9,
		TotalAdditions:    130,
		TotalDeletions:    60,
		Metric:            "commits",
		Mean:              3,
		StdDev:            summary.StdDev,
	}
	if diff := cmp.Diff(expected, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	var entry CIContributorEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if entry.Type != "contributor" || entry.Username != "Alice" || entry.TotalCommits != 6 {
		t.Errorf("entry = %+v", entry)
	}
	if diff := cmp.Diff([]string{"alice@x", "alice@y"}, entry.Emails); diff != "" {
		t.Errorf("emails mismatch (-want +got):\n%s", diff)
	}
	if entry.TotalRegexMatches != 3 || entry.CommitsMatchingRegex != 2 {
		t.Errorf("regex counters = %d/%d, want 3/2", entry.TotalRegexMatches, entry.CommitsMatchingRegex)
	}
}

func TestCIContributorWriter_TopOption(t *testing.T) {
	report := testReport()

	tmpFile := t.TempDir() + "/ci_top.ndjson"
	options := OutputOptions{Format: FormatCI, Top: 1, OutputPath: tmpFile}

	writer := &CIContributorWriter{}
	if err := writer.Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 { // 1 summary + 1 contributor
		t.Fatalf("expected 2 lines with Top=1, got %d", len(lines))
	}

	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.TotalContributors != 3 {
		t.Errorf("summary.TotalContributors = %d, want 3 regardless of Top", summary.TotalContributors)
	}
}
