// Package gittest builds throwaway go-git repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a repository with a worktree rooted in a test temp dir.
type Repo struct {
	t    *testing.T
	Dir  string
	Repo *gogit.Repository
	wt   *gogit.Worktree
}

// New initializes an empty repository.
func New(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &Repo{t: t, Dir: dir, Repo: repo, wt: wt}
}

// Write writes content to rel and stages it.
func (r *Repo) Write(rel, content string) {
	r.t.Helper()
	full := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add: %v", err)
	}
}

// Remove deletes rel from the worktree and the index.
func (r *Repo) Remove(rel string) {
	r.t.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.t.Fatalf("Remove: %v", err)
	}
}

// Commit records the staged changes with the given author at unix time when.
func (r *Repo) Commit(msg, name, email string, when int64) plumbing.Hash {
	r.t.Helper()
	return r.CommitWithParents(msg, name, email, when)
}

// CommitWithParents records a commit with extra parents after HEAD, producing a merge.
func (r *Repo) CommitWithParents(msg, name, email string, when int64, parents ...plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	sig := &object.Signature{Name: name, Email: email, When: time.Unix(when, 0).UTC()}
	opts := &gogit.CommitOptions{Author: sig, Committer: sig}
	if len(parents) > 0 {
		head, err := r.Repo.Head()
		if err != nil {
			r.t.Fatalf("Head: %v", err)
		}
		opts.Parents = append([]plumbing.Hash{head.Hash()}, parents...)
	}
	hash, err := r.wt.Commit(msg, opts)
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return hash
}

// Checkout switches to branch, creating it at HEAD when create is set.
func (r *Repo) Checkout(branch string, create bool) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// HeadBranch returns the short name of the checked out branch.
func (r *Repo) HeadBranch() string {
	r.t.Helper()
	head, err := r.Repo.Head()
	if err != nil {
		r.t.Fatalf("Head: %v", err)
	}
	return head.Name().Short()
}

// SetRemoteRef points refs/remotes/<name> at hash.
func (r *Repo) SetRemoteRef(name string, hash plumbing.Hash) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.ReferenceName("refs/remotes/"+name), hash)
	if err := r.Repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("SetReference: %v", err)
	}
}

// DeleteBranch removes refs/heads/<name>.
func (r *Repo) DeleteBranch(name string) {
	r.t.Helper()
	if err := r.Repo.Storer.RemoveReference(plumbing.NewBranchReferenceName(name)); err != nil {
		r.t.Fatalf("RemoveReference: %v", err)
	}
}

// Lines returns n newline-terminated lines.
func Lines(prefix string, n int) string {
	var b []byte
	for i := 0; i < n; i++ {
		b = append(b, prefix...)
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, '\n')
	}
	return string(b)
}
