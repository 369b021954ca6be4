package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/madara"
)

// Run executes the library list command.
func (c *LibraryListCmd) Run(deps *Dependencies) error {
	filter := madara.EntryFilter{Limit: c.Limit}
	if c.From != "" {
		filter.SiteID = &c.From
	}
	if c.Status != "" {
		status := madara.Status(c.Status)
		switch status {
		case madara.StatusOngoing, madara.StatusCompleted, madara.StatusHiatus,
			madara.StatusCancelled, madara.StatusUnknown:
		default:
			return fail(deps, madara.Errorf(madara.EINVALID, "unknown status %q", c.Status))
		}
		filter.Status = &status
	}
	switch c.NSFW {
	case "":
	case "yes":
		nsfw := true
		filter.NSFW = &nsfw
	case "no":
		nsfw := false
		filter.NSFW = &nsfw
	default:
		return fail(deps, madara.Errorf(madara.EINVALID, "--nsfw must be yes or no"))
	}

	entries, err := deps.Library.FindEntries(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if c.JSON {
		if entries == nil {
			entries = []*madara.Entry{}
		}
		return writeJSON(deps.Stdout, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "Library is empty. Use 'madara sync' to add titles.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s/%s  %-9s %4d  %s\n",
			e.ID, e.SiteID, e.ContentID, e.Status, e.ChapterCount, e.Title)
	}
	return nil
}

// Run executes the library delete command.
func (c *LibraryDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return madara.Errorf(madara.EINVALID, "use --force to confirm deletion")
	}

	entry, err := deps.Library.FindEntryByID(deps.Ctx, c.ID)
	if err != nil {
		if madara.ErrorCode(err) == madara.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: entry %q not found. Use 'madara library' to see saved titles.\n", c.ID)
			return err
		}
		return fail(deps, err)
	}

	if err := deps.Library.DeleteEntry(deps.Ctx, entry.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted %q\n", entry.Title)
	return nil
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var filter madara.EntryFilter
	if c.From != "" {
		filter.SiteID = &c.From
	}

	entries, err := deps.Library.FindEntries(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	store := deps.NewStore(c.Dir, c.Name)
	for _, e := range entries {
		if err := store.Save(deps.Ctx, e); err != nil {
			_ = store.Abort()
			return fail(deps, err)
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Exported %d titles to %s\n", len(entries), filepath.Join(c.Dir, c.Name))
	return nil
}
