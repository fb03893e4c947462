package git

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing"
)

// StatExtractor computes the first-parent line counts and message matches of commits.
type StatExtractor struct {
	repo    Repository
	pattern *regexp.Regexp
	include []string
	exclude []string
	workers int
}

// NewStatExtractor validates opts and returns an extractor reading from repo.
// A malformed regex or glob fails with ErrInvalidPattern.
func NewStatExtractor(repo Repository, opts ExtractOptions) (*StatExtractor, error) {
	e := &StatExtractor{
		repo:    repo,
		include: opts.Include,
		exclude: opts.Exclude,
		workers: opts.Workers,
	}

	if opts.Pattern != "" {
		re, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, opts.Pattern, err)
		}
		e.pattern = re
	}

	for _, p := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: glob %q", ErrInvalidPattern, p)
		}
	}

	return e, nil
}

// MatchesEnabled returns true when a message pattern was supplied.
func (e *StatExtractor) MatchesEnabled() bool {
	return e.pattern != nil
}

// CountMatches returns the number of non-overlapping pattern matches in message.
func (e *StatExtractor) CountMatches(message string) int {
	if e.pattern == nil {
		return 0
	}
	return len(e.pattern.FindAllStringIndex(message, -1))
}

// Extract computes the record of a single commit.
func (e *StatExtractor) Extract(ctx context.Context, c Commit) (CommitRecord, error) {
	return e.extract(ctx, e.repo, c)
}

func (e *StatExtractor) extract(ctx context.Context, repo Repository, c Commit) (CommitRecord, error) {
	// Only the first parent is diffed; merged-in lineages are not counted again.
	parentTree := plumbing.ZeroHash
	if !c.IsRoot() {
		parent, err := repo.CommitMetadata(c.ParentIDs[0])
		if err != nil {
			return CommitRecord{}, err
		}
		parentTree = parent.TreeID
	}

	diff, err := repo.DiffTrees(ctx, parentTree, c.TreeID)
	if err != nil {
		return CommitRecord{}, err
	}

	var insertions, deletions int
	for _, f := range diff.Files {
		if !e.matchesFilters(f.Path) {
			continue
		}
		insertions += f.Additions
		deletions += f.Deletions
	}

	return CommitRecord{
		ID:           c.ID,
		Author:       c.Author,
		AuthorTime:   c.AuthorTime,
		CommitTime:   c.CommitTime,
		Message:      c.Message,
		Insertions:   insertions,
		Deletions:    deletions,
		RegexMatches: e.CountMatches(c.Message),
	}, nil
}

// matchesFilters checks if a path matches the include/exclude filters.
func (e *StatExtractor) matchesFilters(path string) bool {
	if len(e.include) == 0 && len(e.exclude) == 0 {
		return true
	}

	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range e.exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(e.include) == 0 {
		return true
	}

	for _, pattern := range e.include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}
