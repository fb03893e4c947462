package git

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/masmgr/gitgauge-go/internal/git/gittest"
)

func TestNewStatExtractor_InvalidPattern(t *testing.T) {
	tests := []struct {
		name string
		opts ExtractOptions
	}{
		{name: "Bad regex", opts: ExtractOptions{Pattern: "[invalid"}},
		{name: "Bad include glob", opts: ExtractOptions{Include: []string{"src/[a"}}},
		{name: "Bad exclude glob", opts: ExtractOptions{Exclude: []string{"{a,b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStatExtractor(NewMockRepository(), tt.opts)
			if !errors.Is(err, ErrInvalidPattern) {
				t.Fatalf("error = %v, expected ErrInvalidPattern", err)
			}
		})
	}
}

func TestStatExtractor_CountMatches(t *testing.T) {
	e, err := NewStatExtractor(NewMockRepository(), ExtractOptions{Pattern: "fix"})
	if err != nil {
		t.Fatalf("NewStatExtractor: %v", err)
	}

	tests := []struct {
		name     string
		message  string
		expected int
	}{
		{name: "No match", message: "feat: thing", expected: 0},
		{name: "One match", message: "fix: bug", expected: 1},
		{name: "Body counts too", message: "fix: bug\n\nalso fix the other fix", expected: 3},
		{name: "Non-overlapping", message: "fixfix", expected: 2},
		{name: "Empty", message: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CountMatches(tt.message); got != tt.expected {
				t.Errorf("CountMatches(%q) = %d, expected %d", tt.message, got, tt.expected)
			}
		})
	}
}

func TestStatExtractor_CountMatchesDisabled(t *testing.T) {
	e, err := NewStatExtractor(NewMockRepository(), ExtractOptions{})
	if err != nil {
		t.Fatalf("NewStatExtractor: %v", err)
	}
	if e.MatchesEnabled() {
		t.Error("MatchesEnabled() = true without a pattern")
	}
	if got := e.CountMatches("fix everything"); got != 0 {
		t.Errorf("CountMatches() = %d, expected 0", got)
	}
}

func TestStatExtractor_Extract(t *testing.T) {
	repo := NewMockRepository(
		MockCommit{
			Name:    "a",
			Author:  AuthorInfo{Name: "Alice", Email: "alice@x"},
			When:    time.Unix(100, 0),
			Message: "fix: root",
			Diff:    DiffStat{Files: []FileStat{{Path: "a.go", Additions: 10}}},
		},
		MockCommit{
			Name:    "b",
			Parents: []string{"a"},
			Author:  AuthorInfo{Name: "Alice", Email: "alice@y"},
			When:    time.Unix(200, 0),
			Message: "feat: more",
			Diff: DiffStat{Files: []FileStat{
				{Path: "src/b.go", Additions: 5, Deletions: 2},
				{Path: "vendor/lib.go", Additions: 100, Deletions: 50},
				{Path: "docs/readme.md", Additions: 7, Deletions: 1},
			}},
		},
	)

	tests := []struct {
		name          string
		opts          ExtractOptions
		commit        string
		expectedIns   int
		expectedDel   int
		expectedMatch int
	}{
		{name: "Root commit", opts: ExtractOptions{Pattern: "^fix"}, commit: "a", expectedIns: 10, expectedMatch: 1},
		{name: "All files", commit: "b", expectedIns: 112, expectedDel: 53},
		{name: "Exclude vendor", opts: ExtractOptions{Exclude: []string{"vendor/**"}}, commit: "b", expectedIns: 12, expectedDel: 3},
		{name: "Include src", opts: ExtractOptions{Include: []string{"src/**"}}, commit: "b", expectedIns: 5, expectedDel: 2},
		{name: "Exclude wins over include", opts: ExtractOptions{Include: []string{"**/*.go"}, Exclude: []string{"vendor/**"}}, commit: "b", expectedIns: 5, expectedDel: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewStatExtractor(repo, tt.opts)
			if err != nil {
				t.Fatalf("NewStatExtractor: %v", err)
			}
			c, err := repo.CommitMetadata(MockID(tt.commit))
			if err != nil {
				t.Fatalf("CommitMetadata: %v", err)
			}
			r, err := e.Extract(context.Background(), c)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if r.Insertions != tt.expectedIns || r.Deletions != tt.expectedDel {
				t.Errorf("Extract = +%d/-%d, expected +%d/-%d", r.Insertions, r.Deletions, tt.expectedIns, tt.expectedDel)
			}
			if r.RegexMatches != tt.expectedMatch {
				t.Errorf("RegexMatches = %d, expected %d", r.RegexMatches, tt.expectedMatch)
			}
			if r.Author != c.Author {
				t.Errorf("Author = %+v, expected %+v", r.Author, c.Author)
			}
		})
	}
}

func TestStatExtractor_MergeCountsFirstParentOnly(t *testing.T) {
	fx := gittest.New(t)
	fx.Write("a.txt", gittest.Lines("a", 10))
	fx.Commit("initial", "Alice", "alice@x", 100)
	base := fx.HeadBranch()

	fx.Checkout("feature", true)
	fx.Write("feature.txt", gittest.Lines("f", 4))
	feature := fx.Commit("feature", "Bob", "bob@x", 200)

	fx.Checkout(base, false)
	fx.Write("main.txt", gittest.Lines("m", 3))
	fx.Commit("mainline", "Alice", "alice@x", 300)

	// The merge brings in feature.txt relative to its first parent.
	fx.Write("feature.txt", gittest.Lines("f", 4))
	merge := fx.CommitWithParents("merge feature", "Alice", "alice@x", 400, feature)

	repo := openFixture(t, fx)
	c, err := repo.CommitMetadata(merge)
	if err != nil {
		t.Fatalf("CommitMetadata: %v", err)
	}
	if len(c.ParentIDs) != 2 {
		t.Fatalf("parents = %d, expected 2", len(c.ParentIDs))
	}

	e, err := NewStatExtractor(repo, ExtractOptions{})
	if err != nil {
		t.Fatalf("NewStatExtractor: %v", err)
	}
	r, err := e.Extract(context.Background(), c)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if r.Insertions != 4 || r.Deletions != 0 {
		t.Errorf("merge record = +%d/-%d, expected +4/-0", r.Insertions, r.Deletions)
	}
}
