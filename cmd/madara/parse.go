package main

import (
	"io"
	"os"

	"github.com/fwojciec/madara"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := c.read()
	if err != nil {
		return fail(deps, err)
	}

	var result any
	switch c.Kind {
	case ParseHighlights:
		result, err = deps.Parser.Highlights(deps.Site, html)
	case ParseSearch:
		result, err = deps.Parser.SearchResponse(deps.Site, html)
	case ParseContent:
		result, err = deps.Parser.Content(deps.Site, html, c.ID)
	case ParseChapters:
		result, err = deps.Parser.Chapters(deps.Site, html, c.ID)
	case ParsePages:
		result, err = deps.Parser.ChapterData(deps.Site, html)
	case ParseGenres:
		result, err = deps.Parser.Genres(deps.Site, html)
	default:
		err = madara.Errorf(madara.EINVALID, "unknown extraction %q", c.Kind)
	}
	if err != nil {
		return fail(deps, err)
	}
	return writeJSON(deps.Stdout, result)
}

func (c *ParseCmd) read() (string, error) {
	if c.File == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(c.File)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
