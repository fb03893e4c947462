package git

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// CommitID identifies a commit or tree object.
type CommitID = plumbing.Hash

// AuthorInfo represents commit author information.
type AuthorInfo struct {
	Name  string
	Email string
}

// Commit holds the metadata of a single commit as read from the object store.
type Commit struct {
	ID         CommitID
	TreeID     CommitID
	ParentIDs  []CommitID
	Author     AuthorInfo
	AuthorTime time.Time
	CommitTime time.Time
	Message    string
}

// IsRoot returns true if the commit has no parents.
func (c Commit) IsRoot() bool {
	return len(c.ParentIDs) == 0
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	return subjectLine(c.Message)
}

// FileStat holds line counts for one file of a tree diff.
type FileStat struct {
	Path      string
	Additions int
	Deletions int
}

// DiffStat is the result of a tree-to-tree diff.
type DiffStat struct {
	Files []FileStat
}

// Insertions returns the total number of added lines.
func (d DiffStat) Insertions() int {
	n := 0
	for _, f := range d.Files {
		n += f.Additions
	}
	return n
}

// Deletions returns the total number of deleted lines.
func (d DiffStat) Deletions() int {
	n := 0
	for _, f := range d.Files {
		n += f.Deletions
	}
	return n
}

// CommitRecord is the per-commit result of stat extraction.
type CommitRecord struct {
	ID           CommitID
	Author       AuthorInfo
	AuthorTime   time.Time
	CommitTime   time.Time
	Message      string
	Insertions   int
	Deletions    int
	RegexMatches int
}

// Subject returns the first line of the commit message.
func (r CommitRecord) Subject() string {
	return subjectLine(r.Message)
}

// DateRange is an inclusive range of UNIX timestamps in seconds.
type DateRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Contains reports whether t lies within the range, bounds included.
func (d DateRange) Contains(t time.Time) bool {
	s := t.Unix()
	return d.Start <= s && s <= d.End
}

// WalkOptions configures a commit walk.
type WalkOptions struct {
	Branch    string
	DateRange *DateRange
}

// ExtractOptions configures per-commit stat extraction.
type ExtractOptions struct {
	Pattern string   // Regex counted against the full commit message
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
	Workers int      // Parallel diff workers; <= 0 means GOMAXPROCS
}

func subjectLine(message string) string {
	if idx := strings.IndexAny(message, "\r\n"); idx != -1 {
		return message[:idx]
	}
	return message
}
