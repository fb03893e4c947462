package output

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/masmgr/gitgauge-go/internal/contributor"
)

// SortKey selects the column contributors are ranked by.
type SortKey string

const (
	SortCommits   SortKey = "commits"
	SortLines     SortKey = "lines"
	SortAdditions SortKey = "additions"
	SortDeletions SortKey = "deletions"
	SortName      SortKey = "name"
)

// ParseSortKey parses a sort key name; the empty string selects SortCommits.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortCommits, nil
	case SortCommits, SortLines, SortAdditions, SortDeletions, SortName:
		return k, nil
	default:
		return "", fmt.Errorf("invalid sort key %q (expected commits, lines, additions, deletions or name)", s)
	}
}

// SortContributors returns the contributors ordered by key.
// Numeric keys sort descending, name sorts ascending; ties fall back to name.
func SortContributors(contributors map[string]contributor.Contributor, key SortKey) []contributor.Contributor {
	list := make([]contributor.Contributor, 0, len(contributors))
	for _, c := range contributors {
		list = append(list, c)
	}

	value := func(c contributor.Contributor) int {
		switch key {
		case SortLines:
			return c.Additions + c.Deletions
		case SortAdditions:
			return c.Additions
		case SortDeletions:
			return c.Deletions
		case SortName:
			return 0
		default:
			return c.TotalCommits
		}
	}

	slices.SortFunc(list, func(a, b contributor.Contributor) int {
		if c := cmp.Compare(value(b), value(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})
	return list
}
