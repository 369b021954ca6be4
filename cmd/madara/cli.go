package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/madara"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Sites    *madara.Registry
	Site     madara.Context
	Fetcher  madara.Fetcher
	Parser   madara.Parser
	Detector madara.ThemeDetector
	Source   madara.Source
	Library  madara.LibraryService

	// NewStore opens an export destination at dir/name.
	NewStore func(dir, name string) madara.EntryStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Site      string  `short:"s" default:"mangatx" help:"Site profile id"`
	SitesFile string  `name:"sites-file" env:"MADARA_SITES" help:"YAML file with additional site profiles"`
	DB        string  `name:"db" help:"Library database path (default $MADARA_DB or ~/.madara/library.db)"`
	Browser   bool    `short:"b" help:"Fetch pages through headless Chrome"`
	Verbose   bool    `short:"v" help:"Log requests and extraction to stderr"`
	RPS       float64 `name:"rps" default:"2" help:"Requests per second per domain"`

	Sites    SitesCmd    `cmd:"" help:"List known site profiles"`
	Probe    ProbeCmd    `cmd:"" help:"Check whether a URL is served by the Madara theme"`
	Popular  PopularCmd  `cmd:"" help:"List popular titles"`
	Latest   LatestCmd   `cmd:"" help:"List recently updated titles"`
	Search   SearchCmd   `cmd:"" help:"Search titles"`
	Info     InfoCmd     `cmd:"" help:"Show a title's profile"`
	Chapters ChaptersCmd `cmd:"" help:"List a title's chapters"`
	Pages    PagesCmd    `cmd:"" help:"List the page images of a chapter"`
	Genres   GenresCmd   `cmd:"" help:"List the site's genres"`
	Parse    ParseCmd    `cmd:"" help:"Run an extraction against a saved HTML file"`
	Sync     SyncCmd     `cmd:"" help:"Fetch titles and save them to the library"`
	Library  LibraryCmd  `cmd:"" help:"Manage the local library"`
	Export   ExportCmd   `cmd:"" help:"Export the library as JSON and markdown files"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// DirectoryFlags are shared by the listing and search commands.
type DirectoryFlags struct {
	Page  int  `default:"1" help:"First page to fetch"`
	Pages int  `default:"1" help:"Number of pages to walk (0 for all)"`
	JSON  bool `help:"Print JSON"`
}

// PopularCmd is the "popular" subcommand.
type PopularCmd struct {
	DirectoryFlags
}

// LatestCmd is the "latest" subcommand.
type LatestCmd struct {
	DirectoryFlags
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search text"`
	DirectoryFlags
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	ID   string `arg:"" help:"Content id"`
	JSON bool   `help:"Print JSON"`
}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct {
	ID   string `arg:"" help:"Content id"`
	JSON bool   `help:"Print JSON"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	ID      string `arg:"" help:"Content id"`
	Chapter string `arg:"" help:"Chapter id"`
	JSON    bool   `help:"Print JSON"`
}

// GenresCmd is the "genres" subcommand.
type GenresCmd struct {
	JSON bool `help:"Print JSON"`
}

// Parse kinds.
const (
	ParseHighlights = "highlights"
	ParseSearch     = "search"
	ParseContent    = "content"
	ParseChapters   = "chapters"
	ParsePages      = "pages"
	ParseGenres     = "genres"
)

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Kind string `arg:"" enum:"highlights,search,content,chapters,pages,genres" help:"Extraction to run (highlights, search, content, chapters, pages, genres)"`
	File string `arg:"" help:"HTML file, - for stdin"`
	ID   string `help:"Content id for content and chapters"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	IDs         []string `arg:"" optional:"" help:"Content ids"`
	Saved       bool     `help:"Sync every saved title of the site"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// LibraryCmd is the "library" subcommand.
type LibraryCmd struct {
	List   LibraryListCmd   `cmd:"" default:"1" help:"List saved titles"`
	Delete LibraryDeleteCmd `cmd:"" help:"Remove a saved title"`
}

// LibraryListCmd is the "library list" subcommand.
type LibraryListCmd struct {
	From   string `help:"Only titles of this site"`
	Status string `help:"Only titles with this status (ongoing, completed, hiatus, cancelled, unknown)"`
	NSFW   string `name:"nsfw" help:"Only nsfw (yes) or safe (no) titles"`
	Limit  int    `help:"Maximum number of titles"`
	JSON   bool   `help:"Print JSON"`
}

// LibraryDeleteCmd is the "library delete" subcommand.
type LibraryDeleteCmd struct {
	ID    string `arg:"" help:"Entry id"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Parent directory"`
	Name string `arg:"" help:"Export directory name"`
	From string `help:"Only titles of this site"`
}

// fail prints err to stderr and returns it.
func fail(deps *Dependencies, err error) error {
	msg := err.Error()
	if madara.ErrorCode(err) != madara.EINTERNAL {
		msg = madara.ErrorMessage(err)
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
