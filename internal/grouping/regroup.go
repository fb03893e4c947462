package grouping

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/masmgr/gitgauge-go/internal/contributor"
)

// ErrUnknownPolicy is returned by ParsePolicy for an unrecognized name.
var ErrUnknownPolicy = errors.New("unknown grouping policy")

// Policy decides how a contributor overlapping several groups is counted.
type Policy int

const (
	// PolicyEveryMatch adds a contributor to every group it overlaps.
	PolicyEveryMatch Policy = iota
	// PolicyFirstMatch adds a contributor only to the first overlapping group.
	PolicyFirstMatch
)

// String returns the policy name accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case PolicyEveryMatch:
		return "every"
	case PolicyFirstMatch:
		return "first"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a policy name. The empty string selects PolicyEveryMatch.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "every":
		return PolicyEveryMatch, nil
	case "first":
		return PolicyFirstMatch, nil
	default:
		return PolicyEveryMatch, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Regroup re-partitions aggregated contributors under def.
// Groups sum the counters of every contributor sharing at least one email with
// them and list the matched emails; groups nobody matched are dropped.
// Contributors with no email named by any group pass through under their own
// name unless a group of the same name exists. The input is not modified.
func Regroup(def Definition, contributors map[string]contributor.Contributor, policy Policy) map[string]contributor.Contributor {
	names := make([]string, 0, len(contributors))
	for name := range contributors {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make(map[string]contributor.Contributor)
	assigned := make(map[string]bool)

	for _, g := range def.Groups {
		members := make(map[string]struct{}, len(g.Emails))
		for _, e := range g.Emails {
			members[e] = struct{}{}
		}

		var matched []string
		var subjects []string
		counted := make(map[string]bool)
		entry := contributor.New(g.Name, contributor.MultipleContact())
		found := false

		for _, name := range names {
			c := contributors[name]
			emails := c.Contacts.Emails()
			var overlap []string
			for _, e := range emails {
				if _, ok := members[e]; ok {
					overlap = append(overlap, e)
				}
			}
			if len(overlap) == 0 {
				continue
			}
			key := name + "|" + strings.Join(emails, ",")
			if counted[key] || (policy == PolicyFirstMatch && assigned[key]) {
				continue
			}
			counted[key] = true
			assigned[key] = true
			found = true

			for _, e := range overlap {
				if !slices.Contains(matched, e) {
					matched = append(matched, e)
				}
			}

			entry.TotalCommits += c.TotalCommits
			entry.Additions += c.Additions
			entry.Deletions += c.Deletions
			entry.TotalRegexMatches += c.TotalRegexMatches
			entry.CommitsMatchingRegex += c.CommitsMatchingRegex
			subjects = appendCapped(subjects, c.RecentSubjects, contributor.DefaultMaxSubjects)
		}

		if !found {
			continue
		}
		entry.Contacts = contributor.MultipleContact(matched...)
		entry.RecentSubjects = subjects
		out[g.Name] = entry
	}

	recorded := def.Emails()
	for _, name := range names {
		if _, taken := out[name]; taken {
			continue
		}
		c := contributors[name]
		if anyRecorded(c.Contacts.Emails(), recorded) {
			continue
		}
		c.RecentSubjects = slices.Clone(c.RecentSubjects)
		out[name] = c
	}
	return out
}

// Shadowed returns, in name order, the contributors that would have passed
// through regrouped but were replaced by a group entry of the same name.
func Shadowed(def Definition, contributors, regrouped map[string]contributor.Contributor) []string {
	recorded := def.Emails()
	var names []string
	for _, name := range slices.Sorted(maps.Keys(contributors)) {
		if anyRecorded(contributors[name].Contacts.Emails(), recorded) {
			continue
		}
		if _, ok := regrouped[name]; ok && slices.ContainsFunc(def.Groups, func(g Group) bool { return g.Name == name }) {
			names = append(names, name)
		}
	}
	return names
}

func anyRecorded(emails []string, recorded map[string]struct{}) bool {
	for _, e := range emails {
		if _, ok := recorded[e]; ok {
			return true
		}
	}
	return false
}

func appendCapped(dst, src []string, limit int) []string {
	for _, s := range src {
		if len(dst) >= limit {
			break
		}
		dst = append(dst, s)
	}
	return dst
}
