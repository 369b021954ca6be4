package madara

// Parser extracts domain values from HTML documents using a site's
// selector Context. Implementations are stateless and safe for
// concurrent use.
type Parser interface {
	// Highlights extracts listing rows. Rows without a title or id are skipped.
	Highlights(site Context, html string) ([]Highlight, error)

	// Content extracts the profile of one title, including its chapters
	// when any are present in the document.
	// Returns EMISSING or ECONTRACT if the title cannot be derived.
	Content(site Context, html, contentID string) (*Content, error)

	// Chapters extracts the chapter list of one title in document order.
	// Returns EMISSING if any row has no chapter id and EDATE if a release
	// date does not match the configured format.
	Chapters(site Context, html, contentID string) ([]Chapter, error)

	// ChapterData extracts the ordered page image URLs of a chapter.
	ChapterData(site Context, html string) (*ChapterData, error)

	// Genres extracts the site taxonomy from the genre filter form.
	Genres(site Context, html string) ([]Tag, error)

	// SearchResponse extracts one page of search results.
	// Returns EMISSING if any result has no title or id.
	SearchResponse(site Context, html string) (*PagedResult, error)
}
