package main

import (
	"fmt"

	"github.com/fwojciec/madara"
	"github.com/fwojciec/madara/runner"
)

// Run executes the popular command.
func (c *PopularCmd) Run(deps *Dependencies) error {
	return walkDirectory(deps, madara.DirectoryRequest{List: madara.ListPopular, Page: c.Page}, c.DirectoryFlags)
}

// Run executes the latest command.
func (c *LatestCmd) Run(deps *Dependencies) error {
	return walkDirectory(deps, madara.DirectoryRequest{List: madara.ListLatest, Page: c.Page}, c.DirectoryFlags)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	return walkDirectory(deps, madara.DirectoryRequest{Query: c.Query, Page: c.Page}, c.DirectoryFlags)
}

func walkDirectory(deps *Dependencies, req madara.DirectoryRequest, flags DirectoryFlags) error {
	if err := req.Validate(); err != nil {
		return fail(deps, err)
	}

	highlights := []madara.Highlight{}
	err := runner.Walk(deps.Ctx, deps.Source, req, flags.Pages, nil, func(h madara.Highlight) error {
		highlights = append(highlights, h)
		return nil
	})
	if err != nil {
		return fail(deps, err)
	}

	if flags.JSON {
		return writeJSON(deps.Stdout, highlights)
	}
	if len(highlights) == 0 {
		fmt.Fprintln(deps.Stdout, "No titles found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, madara.FormatHighlights(highlights))
	return nil
}
