package git

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// linearHistory builds n commits, c0 (root) through c<n-1> (head), where commit i adds i lines.
func linearHistory(n int) *MockRepository {
	repo := NewMockRepository()
	for i := 0; i < n; i++ {
		c := MockCommit{
			Name:    fmt.Sprintf("c%d", i),
			Author:  AuthorInfo{Name: "Dev", Email: "dev@x"},
			When:    time.Unix(int64(1000+i), 0),
			Message: fmt.Sprintf("commit %d", i),
			Diff:    DiffStat{Files: []FileStat{{Path: "f.txt", Additions: i}}},
		}
		if i > 0 {
			c.Parents = []string{fmt.Sprintf("c%d", i-1)}
		}
		repo.Add(c)
	}
	repo.HeadCommit = fmt.Sprintf("c%d", n-1)
	return repo
}

func TestStatExtractor_ExtractAllPreservesWalkOrder(t *testing.T) {
	const n = batchSize*2 + 17
	repo := linearHistory(n)

	w, err := NewWalker(repo, WalkOptions{})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	e, err := NewStatExtractor(repo, ExtractOptions{Workers: 4})
	if err != nil {
		t.Fatalf("NewStatExtractor: %v", err)
	}

	i := n - 1
	for r, err := range e.ExtractAll(context.Background(), w.Commits(context.Background())) {
		if err != nil {
			t.Fatalf("ExtractAll: %v", err)
		}
		if r.ID != MockID(fmt.Sprintf("c%d", i)) {
			t.Fatalf("record %d out of order: got %s", n-1-i, r.ID)
		}
		if r.Insertions != i {
			t.Fatalf("record c%d insertions = %d, expected %d", i, r.Insertions, i)
		}
		i--
	}
	if i != -1 {
		t.Errorf("records yielded = %d, expected %d", n-1-i, n)
	}
}

func TestStatExtractor_ExtractAllReadFailureAborts(t *testing.T) {
	repo := linearHistory(10)
	repo.ReadErrors = map[string]error{"c4": errors.New("corrupt")}

	w, err := NewWalker(repo, WalkOptions{})
	if err != nil {
		t.Fatalf("NewWalker: %v", err)
	}
	e, err := NewStatExtractor(repo, ExtractOptions{Workers: 3})
	if err != nil {
		t.Fatalf("NewStatExtractor: %v", err)
	}

	for _, err := range e.ExtractAll(context.Background(), w.Commits(context.Background())) {
		if err != nil {
			if !errors.Is(err, ErrCommitRead) {
				t.Fatalf("error = %v, expected ErrCommitRead", err)
			}
			return
		}
	}
	t.Fatal("expected ExtractAll to fail")
}

func TestStatExtractor_ExtractAllCancelled(t *testing.T) {
	repo := linearHistory(20)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	commits := func(yield func(Commit, error) bool) {
		for i := 19; i >= 0; i-- {
			c, err := repo.CommitMetadata(MockID(fmt.Sprintf("c%d", i)))
			if !yield(c, err) {
				return
			}
		}
	}

	e, err := NewStatExtractor(repo, ExtractOptions{Workers: 2})
	if err != nil {
		t.Fatalf("NewStatExtractor: %v", err)
	}
	for _, err := range e.ExtractAll(ctx, commits) {
		if err == nil {
			t.Fatal("expected no records from a cancelled extraction")
		}
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, expected context.Canceled", err)
		}
		return
	}
	t.Fatal("expected an error")
}
