package summary

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/masmgr/gitgauge-go/internal/contributor"
)

// Summarizer turns a contributor's commit subject lines into prose.
// Model choice and retries belong to the implementation.
type Summarizer interface {
	Summarize(ctx context.Context, subjects []string) (string, error)
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, subjects []string) (string, error)

// Summarize calls f.
func (f SummarizerFunc) Summarize(ctx context.Context, subjects []string) (string, error) {
	return f(ctx, subjects)
}

// Fill returns a copy of contributors with AISummary set for every
// contributor that has recent subjects. At most concurrency calls run at
// once (GOMAXPROCS when <= 0). Any failure fails the whole call.
func Fill(ctx context.Context, s Summarizer, contributors map[string]contributor.Contributor, concurrency int) (map[string]contributor.Contributor, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	out := make(map[string]contributor.Contributor, len(contributors))
	for name, c := range contributors {
		out[name] = c
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for name, c := range contributors {
		if len(c.RecentSubjects) == 0 {
			continue
		}
		g.Go(func() error {
			text, err := s.Summarize(gctx, c.RecentSubjects)
			if err != nil {
				return fmt.Errorf("failed to summarize %q: %w", name, err)
			}
			mu.Lock()
			updated := out[name]
			updated.AISummary = text
			out[name] = updated
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
