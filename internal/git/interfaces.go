package git

import (
	"context"
	"iter"
)

// Repository is the object store a contributor walk reads from.
// This abstraction allows for easier testing and potential alternative implementations.
type Repository interface {
	// ListBranches returns local branch names and remote-tracking names (e.g. "origin/main").
	ListBranches() ([]string, error)
	// HeadBranch returns the short name of the branch HEAD points to, or "" when detached.
	HeadBranch() (string, error)
	// ResolveBranch returns the tip of a local branch, falling back to refs/remotes/<name>.
	ResolveBranch(name string) (CommitID, error)
	// CurrentHead returns the commit HEAD resolves to.
	CurrentHead() (CommitID, error)
	// WalkAncestors yields commit ids reachable from start in commit-time order.
	WalkAncestors(ctx context.Context, start CommitID) iter.Seq2[CommitID, error]
	// CommitMetadata reads a single commit.
	CommitMetadata(id CommitID) (Commit, error)
	// DiffTrees diffs parentTree against tree. A zero parentTree means the empty tree.
	DiffTrees(ctx context.Context, parentTree, tree CommitID) (DiffStat, error)
}

// Reopener is implemented by repositories whose handles must not be shared
// between goroutines. Parallel extraction opens one handle per worker.
type Reopener interface {
	Reopen() (Repository, error)
}

// Compile-time interface conformance checks.
var (
	_ Repository = (*GoGitRepository)(nil)
	_ Repository = (*MockRepository)(nil)
	_ Reopener   = (*GoGitRepository)(nil)
)
