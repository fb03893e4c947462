package analysis

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/masmgr/gitgauge-go/internal/contributor"
	"github.com/masmgr/gitgauge-go/internal/git"
	"github.com/masmgr/gitgauge-go/internal/grouping"
)

// Options configures a contributor analysis.
type Options struct {
	Branch      string         // Empty means the current head
	DateRange   *git.DateRange // Inclusive commit-time bounds, nil for all history
	Regex       string         // Counted against commit messages when set
	Include     []string       // Glob patterns to include
	Exclude     []string       // Glob patterns to exclude
	Workers     int            // Parallel diff workers; <= 0 means GOMAXPROCS
	MaxSubjects int            // Subjects kept per contributor; < 0 keeps none, 0 means the default
	Logger      logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (o Options) maxSubjects() int {
	switch {
	case o.MaxSubjects < 0:
		return 0
	case o.MaxSubjects == 0:
		return contributor.DefaultMaxSubjects
	default:
		return o.MaxSubjects
	}
}

// GetContributorInfo opens the repository at path and aggregates its history.
func GetContributorInfo(ctx context.Context, path string, opts Options) (map[string]contributor.Contributor, error) {
	repo, err := git.OpenRepository(path)
	if err != nil {
		return nil, err
	}
	return Analyze(ctx, repo, opts)
}

// Analyze aggregates per-contributor statistics over repo.
// Nothing is returned on failure or cancellation.
func Analyze(ctx context.Context, repo git.Repository, opts Options) (map[string]contributor.Contributor, error) {
	log := opts.logger()
	started := time.Now()

	extractor, err := git.NewStatExtractor(repo, git.ExtractOptions{
		Pattern: opts.Regex,
		Include: opts.Include,
		Exclude: opts.Exclude,
		Workers: opts.Workers,
	})
	if err != nil {
		return nil, err
	}

	walker, err := git.NewWalker(repo, git.WalkOptions{Branch: opts.Branch, DateRange: opts.DateRange})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"branch": opts.Branch,
		"start":  walker.Start().String(),
		"regex":  extractor.MatchesEnabled(),
	}
	if opts.DateRange != nil {
		fields["since"] = opts.DateRange.Start
		fields["until"] = opts.DateRange.End
	}
	log.WithFields(fields).Debug("walking commit history")

	records := extractor.ExtractAll(ctx, walker.Commits(ctx))
	result, err := contributor.Aggregate(records, extractor.MatchesEnabled(), opts.maxSubjects())
	if err != nil {
		log.WithError(err).Debug("contributor analysis failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"contributors": len(result),
		"duration":     time.Since(started).Round(time.Millisecond).String(),
	}).Info("contributor analysis complete")
	return result, nil
}

// GroupContributorsByConfig regroups aggregated contributors under def.
func GroupContributorsByConfig(def grouping.Definition, contributors map[string]contributor.Contributor, policy grouping.Policy) map[string]contributor.Contributor {
	return grouping.Regroup(def, contributors, policy)
}
