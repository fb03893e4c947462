package git

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// MockCommit is a commit held by MockRepository together with its first-parent diff.
type MockCommit struct {
	Name    string   // Unique label, hashed into the commit and tree ids
	Parents []string // Parent labels, first parent first
	Author  AuthorInfo
	When    time.Time
	Message string
	Diff    DiffStat
}

// MockRepository is an in-memory Repository.
// It allows tests to provide predefined commit graphs without needing a real Git repository.
type MockRepository struct {
	Local  map[string]string // Local branch name -> commit label
	Remote map[string]string // Remote-tracking name (e.g. "origin/main") -> commit label
	Head   string            // Branch HEAD points to; empty means detached at HeadCommit
	// HeadCommit is used when Head is empty.
	HeadCommit string
	// ReadErrors makes CommitMetadata fail for the given commit labels.
	ReadErrors map[string]error

	commits map[CommitID]MockCommit
	trees   map[CommitID]CommitID // tree id -> commit id
}

// NewMockRepository creates a MockRepository holding the given commits.
func NewMockRepository(commits ...MockCommit) *MockRepository {
	m := &MockRepository{
		Local:   map[string]string{},
		Remote:  map[string]string{},
		commits: map[CommitID]MockCommit{},
		trees:   map[CommitID]CommitID{},
	}
	for _, c := range commits {
		m.Add(c)
	}
	return m
}

// MockID returns the commit id MockRepository assigns to a label.
func MockID(name string) CommitID {
	return plumbing.ComputeHash(plumbing.CommitObject, []byte(name))
}

// MockTreeID returns the tree id MockRepository assigns to a label.
func MockTreeID(name string) CommitID {
	return plumbing.ComputeHash(plumbing.TreeObject, []byte(name))
}

// Add stores a commit.
func (m *MockRepository) Add(c MockCommit) {
	id := MockID(c.Name)
	m.commits[id] = c
	m.trees[MockTreeID(c.Name)] = id
}

// ListBranches returns local then remote-tracking names, each sorted.
func (m *MockRepository) ListBranches() ([]string, error) {
	local := make([]string, 0, len(m.Local))
	for name := range m.Local {
		local = append(local, name)
	}
	remote := make([]string, 0, len(m.Remote))
	for name := range m.Remote {
		remote = append(remote, name)
	}
	sort.Strings(local)
	sort.Strings(remote)
	return append(local, remote...), nil
}

// HeadBranch returns Head.
func (m *MockRepository) HeadBranch() (string, error) {
	if m.Head == "" && m.HeadCommit == "" {
		return "", ErrInvalidHead
	}
	return m.Head, nil
}

// ResolveBranch resolves a local branch, falling back to a remote-tracking one.
func (m *MockRepository) ResolveBranch(name string) (CommitID, error) {
	if label, ok := m.Local[name]; ok {
		return MockID(label), nil
	}
	if label, ok := m.Remote[name]; ok {
		return MockID(label), nil
	}
	return plumbing.ZeroHash, fmt.Errorf("%w: %q not found as local or remote", ErrBranchNotFound, name)
}

// CurrentHead resolves Head, or HeadCommit when detached.
func (m *MockRepository) CurrentHead() (CommitID, error) {
	if m.Head != "" {
		label, ok := m.Local[m.Head]
		if !ok {
			return plumbing.ZeroHash, fmt.Errorf("%w: unborn branch %q", ErrInvalidHead, m.Head)
		}
		return MockID(label), nil
	}
	if m.HeadCommit == "" {
		return plumbing.ZeroHash, ErrInvalidHead
	}
	return MockID(m.HeadCommit), nil
}

// WalkAncestors yields commits reachable from start, newest commit time first.
func (m *MockRepository) WalkAncestors(ctx context.Context, start CommitID) iter.Seq2[CommitID, error] {
	return func(yield func(CommitID, error) bool) {
		seen := map[CommitID]bool{}
		queue := []CommitID{start}
		var reachable []MockCommit
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if seen[id] {
				continue
			}
			seen[id] = true
			c, ok := m.commits[id]
			if !ok {
				yield(plumbing.ZeroHash, fmt.Errorf("%w %s: object not found", ErrCommitRead, id))
				return
			}
			reachable = append(reachable, c)
			for _, p := range c.Parents {
				queue = append(queue, MockID(p))
			}
		}

		sort.SliceStable(reachable, func(i, j int) bool {
			if !reachable[i].When.Equal(reachable[j].When) {
				return reachable[i].When.After(reachable[j].When)
			}
			return reachable[i].Name < reachable[j].Name
		})

		for _, c := range reachable {
			if err := ctx.Err(); err != nil {
				yield(plumbing.ZeroHash, err)
				return
			}
			if !yield(MockID(c.Name), nil) {
				return
			}
		}
	}
}

// CommitMetadata returns the stored commit.
func (m *MockRepository) CommitMetadata(id CommitID) (Commit, error) {
	c, ok := m.commits[id]
	if !ok {
		return Commit{}, fmt.Errorf("%w %s: object not found", ErrCommitRead, id)
	}
	if err, ok := m.ReadErrors[c.Name]; ok {
		return Commit{}, fmt.Errorf("%w %s: %v", ErrCommitRead, id, err)
	}

	parents := make([]CommitID, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, MockID(p))
	}
	when := c.When.UTC()
	return Commit{
		ID:         id,
		TreeID:     MockTreeID(c.Name),
		ParentIDs:  parents,
		Author:     c.Author,
		AuthorTime: when,
		CommitTime: when,
		Message:    c.Message,
	}, nil
}

// DiffTrees returns the stored diff of the commit owning tree.
// It fails unless parentTree is that commit's first parent tree (or zero for a root),
// so tests catch callers diffing against any other parent.
func (m *MockRepository) DiffTrees(_ context.Context, parentTree, tree CommitID) (DiffStat, error) {
	id, ok := m.trees[tree]
	if !ok {
		return DiffStat{}, fmt.Errorf("%w: tree %s not found", ErrDiffFailure, tree)
	}
	c := m.commits[id]

	want := plumbing.ZeroHash
	if len(c.Parents) > 0 {
		want = MockTreeID(c.Parents[0])
	}
	if parentTree != want {
		return DiffStat{}, fmt.Errorf("%w: %s is not the first parent tree of %s", ErrDiffFailure, parentTree, c.Name)
	}
	return c.Diff, nil
}
