package main

import (
	"fmt"

	"github.com/fwojciec/madara"
)

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	content, err := deps.Source.Content(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		return writeJSON(deps.Stdout, content)
	}
	fmt.Fprintln(deps.Stdout, madara.FormatContent(content))
	return nil
}

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	chapters, err := deps.Source.Chapters(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		if chapters == nil {
			chapters = []madara.Chapter{}
		}
		return writeJSON(deps.Stdout, chapters)
	}
	if len(chapters) == 0 {
		fmt.Fprintln(deps.Stdout, "No chapters found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, madara.FormatChapters(chapters))
	return nil
}

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	data, err := deps.Source.ChapterData(deps.Ctx, c.ID, c.Chapter)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		return writeJSON(deps.Stdout, data)
	}
	for _, page := range data.Pages {
		fmt.Fprintln(deps.Stdout, page.URL)
	}
	return nil
}

// Run executes the genres command.
func (c *GenresCmd) Run(deps *Dependencies) error {
	genres, err := deps.Source.Genres(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		if genres == nil {
			genres = []madara.Tag{}
		}
		return writeJSON(deps.Stdout, genres)
	}
	for _, g := range genres {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", g.ID, g.Title)
	}
	return nil
}
