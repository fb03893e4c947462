package git

import (
	"testing"
	"time"
)

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: 150, End: 300}

	tests := []struct {
		name     string
		unix     int64
		expected bool
	}{
		{name: "Start boundary", unix: 150, expected: true},
		{name: "End boundary", unix: 300, expected: true},
		{name: "Inside", unix: 200, expected: true},
		{name: "Before start", unix: 149, expected: false},
		{name: "After end", unix: 301, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(time.Unix(tt.unix, 0)); got != tt.expected {
				t.Errorf("Contains(%d) = %v, expected %v", tt.unix, got, tt.expected)
			}
		})
	}
}

func TestDiffStat_Totals(t *testing.T) {
	d := DiffStat{Files: []FileStat{
		{Path: "a.go", Additions: 10, Deletions: 2},
		{Path: "b.go", Additions: 0, Deletions: 5},
	}}
	if got := d.Insertions(); got != 10 {
		t.Errorf("Insertions() = %d, expected 10", got)
	}
	if got := d.Deletions(); got != 7 {
		t.Errorf("Deletions() = %d, expected 7", got)
	}
	if got := (DiffStat{}).Insertions(); got != 0 {
		t.Errorf("empty Insertions() = %d, expected 0", got)
	}
}

func TestCommit_Subject(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{name: "Single line", message: "fix bug", expected: "fix bug"},
		{name: "Multi-line with LF", message: "first line\n\nbody", expected: "first line"},
		{name: "Multi-line with CRLF", message: "first line\r\nbody", expected: "first line"},
		{name: "Empty", message: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Commit{Message: tt.message}).Subject(); got != tt.expected {
				t.Errorf("Subject() = %q, expected %q", got, tt.expected)
			}
			if got := (CommitRecord{Message: tt.message}).Subject(); got != tt.expected {
				t.Errorf("record Subject() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCommit_IsRoot(t *testing.T) {
	if !(Commit{}).IsRoot() {
		t.Error("commit without parents should be root")
	}
	if (Commit{ParentIDs: []CommitID{MockID("a")}}).IsRoot() {
		t.Error("commit with a parent should not be root")
	}
}
