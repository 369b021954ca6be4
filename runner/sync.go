package runner

import (
	"context"

	"github.com/fwojciec/madara"
	"golang.org/x/sync/errgroup"
)

// Syncer refreshes library entries from a source.
type Syncer struct {
	Source      madara.Source
	Library     madara.LibraryService
	Concurrency int
}

// SyncResult holds the outcome of a sync operation.
type SyncResult struct {
	Changed   int
	Unchanged int
	Failed    int
}

// SyncEvent reports progress during a sync operation.
type SyncEvent struct {
	Completed int
	Total     int
	ContentID string
	Title     string
	Changed   bool
	Error     error
}

// SyncProgressFunc is a callback for reporting sync progress.
type SyncProgressFunc func(event SyncEvent)

// syncResult holds the outcome of fetching a single title.
type syncResult struct {
	position  int
	contentID string
	content   *madara.Content
	err       error
}

// Sync fetches every title concurrently and saves it to the library in
// input order. A title that fails to fetch or save is counted and
// reported, not fatal. The progress callback, if provided, receives one
// event per title.
func (s *Syncer) Sync(ctx context.Context, contentIDs []string, progress SyncProgressFunc) (*SyncResult, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	site := s.Source.Site()

	resultCh := make(chan syncResult, len(contentIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, id := range contentIDs {
			g.Go(func() error {
				content, err := s.Source.Content(gctx, id)
				resultCh <- syncResult{position: i, contentID: id, content: content, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]syncResult, len(contentIDs))
	for r := range resultCh {
		results[r.position] = r
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out SyncResult
	for i, r := range results {
		event := SyncEvent{Completed: i + 1, Total: len(results), ContentID: r.contentID, Error: r.err}
		if r.err == nil {
			event.Title = r.content.Title
			event.Changed, event.Error = s.Library.SaveEntry(ctx, madara.NewEntry(site.ID, r.contentID, r.content))
		}

		switch {
		case event.Error != nil:
			out.Failed++
		case event.Changed:
			out.Changed++
		default:
			out.Unchanged++
		}

		if progress != nil {
			progress(event)
		}
	}

	return &out, nil
}
