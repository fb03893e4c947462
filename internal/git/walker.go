package git

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
)

var errWalkConsumed = errors.New("commit walk already consumed")

// Walker produces the commits of one walk. It can be consumed only once.
type Walker struct {
	repo      Repository
	start     CommitID
	dateRange *DateRange
	consumed  bool
}

// NewWalker resolves the starting point of a walk.
// A named branch must be one of the repository's branch names; an empty
// branch walks from HEAD.
func NewWalker(repo Repository, opts WalkOptions) (*Walker, error) {
	start, err := ResolveStart(repo, opts.Branch)
	if err != nil {
		return nil, err
	}
	return &Walker{repo: repo, start: start, dateRange: opts.DateRange}, nil
}

// ResolveStart returns the commit a walk begins at.
func ResolveStart(repo Repository, branch string) (CommitID, error) {
	if branch == "" {
		return repo.CurrentHead()
	}

	branches, err := repo.ListBranches()
	if err != nil {
		return CommitID{}, err
	}
	if !slices.Contains(branches, branch) {
		return CommitID{}, fmt.Errorf("%w: %q not found in the repository", ErrBranchNotFound, branch)
	}
	return repo.ResolveBranch(branch)
}

// Start returns the resolved starting commit.
func (w *Walker) Start() CommitID {
	return w.start
}

// Commits yields commits newest commit time first, skipping those outside the
// date range. Out-of-range commits never end the walk: merged lineages may
// interleave in time.
func (w *Walker) Commits(ctx context.Context) iter.Seq2[Commit, error] {
	return func(yield func(Commit, error) bool) {
		if w.consumed {
			yield(Commit{}, errWalkConsumed)
			return
		}
		w.consumed = true

		for id, err := range w.repo.WalkAncestors(ctx, w.start) {
			if err != nil {
				yield(Commit{}, err)
				return
			}
			c, err := w.repo.CommitMetadata(id)
			if err != nil {
				yield(Commit{}, err)
				return
			}
			if w.dateRange != nil && !w.dateRange.Contains(c.CommitTime) {
				continue
			}
			if !yield(c, nil) {
				return
			}
		}
	}
}
