package madara

import "context"

// Directory list names.
const (
	ListPopular = "popular"
	ListLatest  = "latest"
)

// DirectoryRequest selects one page of a site's directory. A non-empty
// Query searches; otherwise List selects a listing.
type DirectoryRequest struct {
	List  string `json:"list"`
	Query string `json:"query"`
	Page  int    `json:"page"`
}

// Validate returns an error if the request contains invalid fields.
func (r DirectoryRequest) Validate() error {
	if r.Page < 1 {
		return Errorf(EINVALID, "directory page must be positive, got %d", r.Page)
	}
	if r.Query == "" && r.List != ListPopular && r.List != ListLatest {
		return Errorf(EINVALID, "unknown directory list %q", r.List)
	}
	return nil
}

// Source serves the content of one site: it fetches pages and feeds them
// through a Parser.
type Source interface {
	// Site returns the selector context the source is bound to.
	Site() Context

	// Directory returns one page of a listing or search.
	Directory(ctx context.Context, req DirectoryRequest) (*PagedResult, error)

	// Content returns the profile of a title, chapters included.
	Content(ctx context.Context, contentID string) (*Content, error)

	// Chapters returns the chapter list of a title.
	Chapters(ctx context.Context, contentID string) ([]Chapter, error)

	// ChapterData returns the pages of a chapter.
	ChapterData(ctx context.Context, contentID, chapterID string) (*ChapterData, error)

	// Genres returns the site taxonomy.
	Genres(ctx context.Context) ([]Tag, error)
}

// Deduplicator remembers content ids seen while walking a directory.
// Madara listings shift while being paged, so the same title can show up
// on consecutive pages.
type Deduplicator interface {
	// Seen records id and reports whether it may have been recorded before.
	Seen(id string) bool
}
