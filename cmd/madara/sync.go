package main

import (
	"fmt"

	"github.com/fwojciec/madara"
	"github.com/fwojciec/madara/runner"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	ids := c.IDs
	if c.Saved {
		siteID := deps.Site.ID
		entries, err := deps.Library.FindEntries(deps.Ctx, madara.EntryFilter{SiteID: &siteID})
		if err != nil {
			return fail(deps, err)
		}
		for _, e := range entries {
			ids = append(ids, e.ContentID)
		}
	}
	if len(ids) == 0 {
		return fail(deps, madara.Errorf(madara.EINVALID, "no content ids given; pass ids or --saved"))
	}

	syncer := &runner.Syncer{
		Source:      deps.Source,
		Library:     deps.Library,
		Concurrency: c.Concurrency,
	}
	result, err := syncer.Sync(deps.Ctx, ids, func(e runner.SyncEvent) {
		switch {
		case e.Error != nil:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: error: %v\n", e.Completed, e.Total, e.ContentID, e.Error)
		case e.Changed:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s (updated)\n", e.Completed, e.Total, e.Title)
		default:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", e.Completed, e.Total, e.Title)
		}
	})
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Synced %d titles: %d updated, %d unchanged, %d failed\n",
		len(ids), result.Changed, result.Unchanged, result.Failed)
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d titles failed", result.Failed, len(ids))
	}
	return nil
}
