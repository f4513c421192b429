// Package verify drives citation verification batches: one citation at a
// time, all providers in parallel per citation.
package verify

import (
	"context"
	"math"
	"sync"
	"time"

	"refcheck/internal/citation"
	"refcheck/internal/provider"
)

// Record is the verification outcome for one input line. Records are built
// once, in input order, and not mutated afterwards.
type Record struct {
	Original string                     `json:"original"`
	Query    string                     `json:"query"`
	Status   citation.Status            `json:"status"`
	Results  map[string]provider.Result `json:"results"`
}

// Options configures a verification batch.
type Options struct {
	// Delay is the pause between consecutive citations, to stay inside
	// provider quotas. No delay follows the last citation.
	Delay time.Duration

	// OnProgress, if set, is called after each citation with the percentage
	// of the batch completed (1-100). Never called for empty input.
	OnProgress func(percent int)
}

// Verify checks each line against every provider and returns one record per
// line, in input order. Callers filter blank lines first (see
// citation.SplitLines). Individual provider failures never abort the batch;
// they are recorded on the affected result only.
//
// The context is checked before each citation and during the inter-line
// delay. On cancellation Verify returns the records completed so far along
// with the context's error.
func Verify(ctx context.Context, lines []string, providers []provider.Provider, opts Options) ([]Record, error) {
	records := make([]Record, 0, len(lines))
	total := len(lines)

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		query := citation.Normalize(line)
		results := lookupAll(ctx, providers, query)

		records = append(records, Record{
			Original: line,
			Query:    query,
			Status:   aggregate(results),
			Results:  results,
		})

		if opts.OnProgress != nil {
			opts.OnProgress(percent(i+1, total))
		}

		if opts.Delay > 0 && i < total-1 {
			if err := sleep(ctx, opts.Delay); err != nil {
				return records, err
			}
		}
	}

	return records, nil
}

// lookupAll fans out one goroutine per provider and joins all of them
// before returning; no result short-circuits the others.
func lookupAll(ctx context.Context, providers []provider.Provider, query string) map[string]provider.Result {
	results := make([]provider.Result, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			results[i] = p.Lookup(ctx, query)
		}(i, p)
	}
	wg.Wait()

	byName := make(map[string]provider.Result, len(results))
	for _, r := range results {
		byName[r.Provider] = r
	}
	return byName
}

// aggregate maps a citation's provider results to its status: any match
// wins, any bare find is suspicious, everything else (including errors) is
// not found.
func aggregate(results map[string]provider.Result) citation.Status {
	anyFound := false
	for _, r := range results {
		if r.Matched {
			return citation.StatusVerified
		}
		if r.Found {
			anyFound = true
		}
	}
	if anyFound {
		return citation.StatusSuspicious
	}
	return citation.StatusNotFound
}

func percent(done, total int) int {
	return int(math.Round(float64(done) / float64(total) * 100))
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
