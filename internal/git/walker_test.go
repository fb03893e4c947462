package git

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func walkFixture() *MockRepository {
	repo := NewMockRepository(
		MockCommit{Name: "a", When: time.Unix(100, 0), Message: "a"},
		MockCommit{Name: "b", Parents: []string{"a"}, When: time.Unix(149, 0), Message: "b"},
		MockCommit{Name: "c", Parents: []string{"b"}, When: time.Unix(150, 0), Message: "c"},
		MockCommit{Name: "d", Parents: []string{"c"}, When: time.Unix(300, 0), Message: "d"},
		MockCommit{Name: "e", Parents: []string{"d"}, When: time.Unix(301, 0), Message: "e"},
	)
	repo.Local["main"] = "e"
	repo.Local["old"] = "b"
	repo.Remote["origin/topic"] = "c"
	repo.Head = "main"
	return repo
}

func collectMessages(t *testing.T, w *Walker) []string {
	t.Helper()
	var got []string
	for c, err := range w.Commits(context.Background()) {
		if err != nil {
			t.Fatalf("Commits: %v", err)
		}
		got = append(got, c.Message)
	}
	return got
}

func TestWalker_Resolution(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		expected []string
	}{
		{name: "Head", branch: "", expected: []string{"e", "d", "c", "b", "a"}},
		{name: "Local branch", branch: "old", expected: []string{"b", "a"}},
		{name: "Remote-tracking branch", branch: "origin/topic", expected: []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWalker(walkFixture(), WalkOptions{Branch: tt.branch})
			if err != nil {
				t.Fatalf("NewWalker: %v", err)
			}
			if diff := cmp.Diff(tt.expected, collectMessages(t, w)); diff != "" {
				t.Errorf("walk mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalker_BranchNotFound(t *testing.T) {
	_, err := NewWalker(walkFixture(), WalkOptions{Branch: "nope"})
	if !errors.Is(err, ErrBranchNotFound) {
		t.Fatalf("NewWalker error = %v, expected ErrBranchNotFound", err)
	}
}

func TestWalker_DateRangeBoundaries(t *testing.T) {
	w, err := NewWalker(walkFixture(), WalkOptions{DateRange: &DateRange{Start: 150, End: 300}})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	// b (start-1) and e (end+1) are excluded; c (start) and d (end) are included.
	if diff := cmp.Diff([]string{"d", "c"}, collectMessages(t, w)); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_FilterSkipsWithoutStopping(t *testing.T) {
	// A side branch with old timestamps merged into a newer mainline: out-of-range
	// commits interleave with in-range ones and must not end the walk.
	repo := NewMockRepository(
		MockCommit{Name: "root", When: time.Unix(500, 0), Message: "root"},
		MockCommit{Name: "old", Parents: []string{"root"}, When: time.Unix(50, 0), Message: "old"},
		MockCommit{Name: "older", Parents: []string{"old"}, When: time.Unix(40, 0), Message: "older"},
		MockCommit{Name: "main", Parents: []string{"root"}, When: time.Unix(600, 0), Message: "main"},
		MockCommit{Name: "merge", Parents: []string{"main", "older"}, When: time.Unix(700, 0), Message: "merge"},
	)
	repo.HeadCommit = "merge"

	w, err := NewWalker(repo, WalkOptions{DateRange: &DateRange{Start: 0, End: 550}})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	if diff := cmp.Diff([]string{"root", "old", "older"}, collectMessages(t, w)); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalker_SinglePass(t *testing.T) {
	w, err := NewWalker(walkFixture(), WalkOptions{})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	collectMessages(t, w)

	for _, err := range w.Commits(context.Background()) {
		if !errors.Is(err, errWalkConsumed) {
			t.Fatalf("second walk error = %v, expected errWalkConsumed", err)
		}
		return
	}
	t.Fatal("second walk yielded nothing")
}

func TestWalker_CommitReadFailureAborts(t *testing.T) {
	repo := walkFixture()
	repo.ReadErrors = map[string]error{"c": errors.New("corrupt")}

	w, err := NewWalker(repo, WalkOptions{})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	var seen int
	for _, err := range w.Commits(context.Background()) {
		if err != nil {
			if !errors.Is(err, ErrCommitRead) {
				t.Fatalf("error = %v, expected ErrCommitRead", err)
			}
			if seen != 2 {
				t.Errorf("commits before failure = %d, expected 2", seen)
			}
			return
		}
		seen++
	}
	t.Fatal("expected the walk to fail")
}
