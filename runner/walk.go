package runner

import (
	"context"

	"github.com/fwojciec/madara"
	"github.com/fwojciec/madara/bloom"
)

// Dedup filter configuration for directory walks.
const (
	// walkExpectedIDs is the expected number of ids for Bloom filter sizing.
	walkExpectedIDs = 10000
	// walkFalsePositiveRate is the acceptable false positive rate for deduplication.
	walkFalsePositiveRate = 0.001
)

// WalkFunc is called for every new highlight found by Walk.
type WalkFunc func(h madara.Highlight) error

// Walk pages through a directory starting at req.Page, calling fn once per
// content id. It stops after the last page, after maxPages pages when
// maxPages is positive, on a page that yields no new ids, or when fn
// returns an error. A nil seen uses a fresh Bloom filter.
func Walk(ctx context.Context, src madara.Source, req madara.DirectoryRequest, maxPages int, seen madara.Deduplicator, fn WalkFunc) error {
	if req.Page < 1 {
		req.Page = 1
	}
	if seen == nil {
		seen = bloom.NewFilter(walkExpectedIDs, walkFalsePositiveRate)
	}

	for pages := 0; maxPages <= 0 || pages < maxPages; pages++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := src.Directory(ctx, req)
		if err != nil {
			return err
		}

		fresh := 0
		for _, h := range result.Results {
			if seen.Seen(h.ID) {
				continue
			}
			fresh++
			if err := fn(h); err != nil {
				return err
			}
		}

		if result.IsLastPage || fresh == 0 {
			return nil
		}
		req.Page++
	}
	return nil
}
