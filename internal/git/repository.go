package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitRepository reads commit history from an on-disk Git repository.
type GoGitRepository struct {
	repo *git.Repository
	path string
}

// OpenRepository opens the repository (bare or with a worktree) at path.
func OpenRepository(path string) (*GoGitRepository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRepositoryOpen, path, err)
	}
	repo, err := git.PlainOpen(abs)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrRepositoryOpen, path, err)
	}
	return &GoGitRepository{repo: repo, path: abs}, nil
}

// Path returns the absolute path the repository was opened from.
func (r *GoGitRepository) Path() string {
	return r.path
}

// Reopen opens an independent handle on the same repository.
// go-git handles are not safe for concurrent use; each diff worker gets its own.
func (r *GoGitRepository) Reopen() (Repository, error) {
	return OpenRepository(r.path)
}

// ListBranches returns local branches followed by remote-tracking branches, each sorted.
// Symbolic refs such as origin/HEAD are not listed.
func (r *GoGitRepository) ListBranches() ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer refs.Close()

	var local, remote []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch():
			local = append(local, name.Short())
		case name.IsRemote():
			remote = append(remote, name.Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}

	sort.Strings(local)
	sort.Strings(remote)
	return append(local, remote...), nil
}

// HeadBranch returns the branch HEAD points to, or "" when HEAD is detached.
func (r *GoGitRepository) HeadBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidHead, err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// ResolveBranch returns the tip of the local branch name, or of refs/remotes/<name>.
func (r *GoGitRepository) ResolveBranch(name string) (CommitID, error) {
	if ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
		return ref.Hash(), nil
	}
	remoteName := plumbing.ReferenceName("refs/remotes/" + name)
	if ref, err := r.repo.Reference(remoteName, true); err == nil {
		return ref.Hash(), nil
	}
	return plumbing.ZeroHash, fmt.Errorf("%w: %q not found as local or remote", ErrBranchNotFound, name)
}

// CurrentHead returns the commit HEAD resolves to.
func (r *GoGitRepository) CurrentHead() (CommitID, error) {
	head, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: %v", ErrInvalidHead, err)
	}
	if head.Hash().IsZero() {
		return plumbing.ZeroHash, ErrInvalidHead
	}
	return head.Hash(), nil
}

// WalkAncestors yields every commit reachable from start, newest commit time first.
// The order is not a strict total order across merged lineages.
func (r *GoGitRepository) WalkAncestors(ctx context.Context, start CommitID) iter.Seq2[CommitID, error] {
	return func(yield func(CommitID, error) bool) {
		cIter, err := r.repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
		if err != nil {
			yield(plumbing.ZeroHash, fmt.Errorf("%w %s: %v", ErrCommitRead, start, err))
			return
		}
		defer cIter.Close()

		for {
			if err := ctx.Err(); err != nil {
				yield(plumbing.ZeroHash, err)
				return
			}
			c, err := cIter.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(plumbing.ZeroHash, fmt.Errorf("%w: %v", ErrCommitRead, err))
				return
			}
			if !yield(c.Hash, nil) {
				return
			}
		}
	}
}

// CommitMetadata reads the commit with the given id.
func (r *GoGitRepository) CommitMetadata(id CommitID) (Commit, error) {
	c, err := r.repo.CommitObject(id)
	if err != nil {
		return Commit{}, fmt.Errorf("%w %s: %v", ErrCommitRead, id, err)
	}

	parents := make([]CommitID, len(c.ParentHashes))
	copy(parents, c.ParentHashes)

	return Commit{
		ID:         c.Hash,
		TreeID:     c.TreeHash,
		ParentIDs:  parents,
		Author:     AuthorInfo{Name: c.Author.Name, Email: c.Author.Email},
		AuthorTime: c.Author.When.UTC(),
		CommitTime: c.Committer.When.UTC(),
		Message:    c.Message,
	}, nil
}

// DiffTrees computes per-file line counts between parentTree and tree.
// Binary files count zero lines; renames follow go-git's default detection.
func (r *GoGitRepository) DiffTrees(ctx context.Context, parentTree, tree CommitID) (DiffStat, error) {
	to, err := r.repo.TreeObject(tree)
	if err != nil {
		return DiffStat{}, fmt.Errorf("%w: tree %s: %v", ErrDiffFailure, tree, err)
	}

	from := &object.Tree{}
	if !parentTree.IsZero() {
		from, err = r.repo.TreeObject(parentTree)
		if err != nil {
			return DiffStat{}, fmt.Errorf("%w: tree %s: %v", ErrDiffFailure, parentTree, err)
		}
	}

	patch, err := from.PatchContext(ctx, to)
	if err != nil {
		return DiffStat{}, fmt.Errorf("%w: %s..%s: %v", ErrDiffFailure, parentTree, tree, err)
	}

	stats := patch.Stats()
	files := make([]FileStat, 0, len(stats))
	for _, s := range stats {
		files = append(files, FileStat{
			Path:      s.Name,
			Additions: s.Addition,
			Deletions: s.Deletion,
		})
	}
	return DiffStat{Files: files}, nil
}
