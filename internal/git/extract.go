package git

import (
	"context"
	"fmt"
	"iter"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// batchSize is the number of walked commits diffed together before their
// records are handed on in walk order.
const batchSize = 256

// ExtractAll maps commits to records. Diffs within a batch run on a fixed pool
// of workers; records are yielded in the order the commits arrived. The first
// failure ends the sequence with that error.
func (e *StatExtractor) ExtractAll(ctx context.Context, commits iter.Seq2[Commit, error]) iter.Seq2[CommitRecord, error] {
	return func(yield func(CommitRecord, error) bool) {
		handles, err := e.workerHandles()
		if err != nil {
			yield(CommitRecord{}, err)
			return
		}

		batch := make([]Commit, 0, batchSize)
		flush := func() bool {
			records, err := e.extractBatch(ctx, handles, batch)
			batch = batch[:0]
			if err != nil {
				yield(CommitRecord{}, err)
				return false
			}
			for _, r := range records {
				if !yield(r, nil) {
					return false
				}
			}
			return true
		}

		for c, err := range commits {
			if err != nil {
				yield(CommitRecord{}, err)
				return
			}
			batch = append(batch, c)
			if len(batch) == batchSize && !flush() {
				return
			}
		}
		if len(batch) > 0 {
			flush()
		}
	}
}

func (e *StatExtractor) workerCount() int {
	if e.workers > 0 {
		return e.workers
	}
	return runtime.GOMAXPROCS(0)
}

// workerHandles returns one repository handle per worker.
func (e *StatExtractor) workerHandles() ([]Repository, error) {
	n := e.workerCount()
	handles := make([]Repository, n)
	reopener, ok := e.repo.(Reopener)
	for i := range handles {
		if !ok {
			handles[i] = e.repo
			continue
		}
		h, err := reopener.Reopen()
		if err != nil {
			return nil, fmt.Errorf("open diff worker %d: %w", i, err)
		}
		handles[i] = h
	}
	return handles, nil
}

func (e *StatExtractor) extractBatch(ctx context.Context, handles []Repository, batch []Commit) ([]CommitRecord, error) {
	records := make([]CommitRecord, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	next := make(chan int)

	for _, repo := range handles {
		g.Go(func() error {
			for i := range next {
				r, err := e.extract(gctx, repo, batch[i])
				if err != nil {
					return err
				}
				records[i] = r
			}
			return nil
		})
	}

feed:
	for i := range batch {
		select {
		case next <- i:
		case <-gctx.Done():
			break feed
		}
	}
	close(next)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled parent context may stop the feed without any worker failing.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
