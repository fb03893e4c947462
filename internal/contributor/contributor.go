package contributor

import "github.com/masmgr/gitgauge-go/internal/profile"

// DefaultMaxSubjects is the number of commit subjects kept per contributor.
const DefaultMaxSubjects = 10

// Contributor holds the aggregated statistics of one identity.
type Contributor struct {
	Username             string  `json:"username"`
	Contacts             Contact `json:"contacts"`
	TotalCommits         int     `json:"total_commits"`
	Additions            int     `json:"additions"`
	Deletions            int     `json:"deletions"`
	ProfileColour        string  `json:"profile_colour"`
	UsernameInitials     string  `json:"username_initials"`
	TotalRegexMatches    int     `json:"total_regex_matches"`
	CommitsMatchingRegex int     `json:"commits_matching_regex"`
	AISummary            string  `json:"ai_summary"`

	// RecentSubjects holds commit subject lines in walk order, most recent first.
	RecentSubjects []string `json:"-"`
}

// New returns an empty contributor for name with its presentation fields derived.
func New(name string, contact Contact) Contributor {
	return Contributor{
		Username:         name,
		Contacts:         contact,
		ProfileColour:    profile.Colour(name),
		UsernameInitials: profile.Initials(name),
	}
}
