package contributor

import (
	"iter"

	"github.com/masmgr/gitgauge-go/internal/git"
)

// Aggregator folds commit records into contributors keyed by display name.
type Aggregator struct {
	regexEnabled bool
	maxSubjects  int
	byName       map[string]*Contributor
}

// NewAggregator creates an aggregator. Match counters are only updated when
// regexEnabled is set; maxSubjects bounds RecentSubjects (0 keeps none).
func NewAggregator(regexEnabled bool, maxSubjects int) *Aggregator {
	return &Aggregator{
		regexEnabled: regexEnabled,
		maxSubjects:  maxSubjects,
		byName:       make(map[string]*Contributor),
	}
}

// Add folds one record into the contributor named by its author.
func (a *Aggregator) Add(r git.CommitRecord) {
	name, email := r.Author.Name, r.Author.Email

	c, ok := a.byName[name]
	if !ok {
		created := New(name, SingleContact(email))
		c = &created
		a.byName[name] = c
	} else {
		c.Contacts = c.Contacts.With(email)
	}

	c.TotalCommits++
	c.Additions += r.Insertions
	c.Deletions += r.Deletions

	if a.regexEnabled {
		c.TotalRegexMatches += r.RegexMatches
		if r.RegexMatches > 0 {
			c.CommitsMatchingRegex++
		}
	}

	if len(c.RecentSubjects) < a.maxSubjects {
		c.RecentSubjects = append(c.RecentSubjects, r.Subject())
	}
}

// Len returns the number of distinct display names seen.
func (a *Aggregator) Len() int {
	return len(a.byName)
}

// Result returns a snapshot of the aggregated contributors.
func (a *Aggregator) Result() map[string]Contributor {
	out := make(map[string]Contributor, len(a.byName))
	for name, c := range a.byName {
		snap := *c
		snap.RecentSubjects = append([]string(nil), c.RecentSubjects...)
		out[name] = snap
	}
	return out
}

// Aggregate drains records into a contributor map.
// The first error aborts the fold and no partial map is returned.
func Aggregate(records iter.Seq2[git.CommitRecord, error], regexEnabled bool, maxSubjects int) (map[string]Contributor, error) {
	agg := NewAggregator(regexEnabled, maxSubjects)
	for r, err := range records {
		if err != nil {
			return nil, err
		}
		agg.Add(r)
	}
	return agg.Result(), nil
}
