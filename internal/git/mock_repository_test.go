package git

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMockRepository_WalkAncestorsOrder(t *testing.T) {
	repo := NewMockRepository(
		MockCommit{Name: "a", When: time.Unix(100, 0)},
		MockCommit{Name: "b", Parents: []string{"a"}, When: time.Unix(300, 0)},
		MockCommit{Name: "c", Parents: []string{"a"}, When: time.Unix(200, 0)},
		MockCommit{Name: "m", Parents: []string{"b", "c"}, When: time.Unix(400, 0)},
		MockCommit{Name: "unreachable", When: time.Unix(500, 0)},
	)

	var got []CommitID
	for id, err := range repo.WalkAncestors(context.Background(), MockID("m")) {
		if err != nil {
			t.Fatalf("WalkAncestors: %v", err)
		}
		got = append(got, id)
	}

	expected := []CommitID{MockID("m"), MockID("b"), MockID("c"), MockID("a")}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestMockRepository_DiffTreesRequiresFirstParent(t *testing.T) {
	repo := NewMockRepository(
		MockCommit{Name: "a"},
		MockCommit{Name: "b"},
		MockCommit{Name: "m", Parents: []string{"a", "b"}, Diff: DiffStat{Files: []FileStat{{Path: "x", Additions: 1}}}},
	)

	stat, err := repo.DiffTrees(context.Background(), MockTreeID("a"), MockTreeID("m"))
	if err != nil {
		t.Fatalf("DiffTrees(first parent): %v", err)
	}
	if stat.Insertions() != 1 {
		t.Errorf("Insertions() = %d, expected 1", stat.Insertions())
	}

	if _, err := repo.DiffTrees(context.Background(), MockTreeID("b"), MockTreeID("m")); !errors.Is(err, ErrDiffFailure) {
		t.Errorf("DiffTrees(second parent) error = %v, expected ErrDiffFailure", err)
	}
}

func TestMockRepository_ReadErrors(t *testing.T) {
	repo := NewMockRepository(MockCommit{Name: "a"})
	repo.ReadErrors = map[string]error{"a": errors.New("corrupt object")}

	if _, err := repo.CommitMetadata(MockID("a")); !errors.Is(err, ErrCommitRead) {
		t.Errorf("CommitMetadata error = %v, expected ErrCommitRead", err)
	}
}

func TestMockRepository_Head(t *testing.T) {
	repo := NewMockRepository(MockCommit{Name: "a"})
	if _, err := repo.CurrentHead(); !errors.Is(err, ErrInvalidHead) {
		t.Errorf("CurrentHead on empty repo error = %v, expected ErrInvalidHead", err)
	}

	repo.Local["main"] = "a"
	repo.Head = "main"
	id, err := repo.CurrentHead()
	if err != nil {
		t.Fatalf("CurrentHead: %v", err)
	}
	if id != MockID("a") {
		t.Errorf("CurrentHead = %s, expected %s", id, MockID("a"))
	}
}
