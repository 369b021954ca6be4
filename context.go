package madara

import (
	"net/url"
	"strings"
)

// Default selectors shared by most Madara installations.
const (
	DefaultListingSelector      = ".page-item-detail"
	DefaultListingTitleSelector = "h3.h5 a"
	DefaultCoverSelector        = "img"
	DefaultSearchTitleSelector  = ".post-title"
	DefaultGenreFormSelector    = "div.checkbox-group div.checkbox"
	DefaultNavigationSelector   = "div.nav-previous, nav.navigation-ajax, a.nextpostslink"
	DefaultLanguage             = "en_us"
)

// ReadingMode is the orientation a reader should use for a title.
type ReadingMode string

// ReadingMode constants.
const (
	ReadingModePagedManga ReadingMode = "paged_manga"
	ReadingModePagedComic ReadingMode = "paged_comic"
	ReadingModeVertical   ReadingMode = "vertical"
	ReadingModeWebtoon    ReadingMode = "webtoon"
	ReadingModeNovel      ReadingMode = "novel"
)

// Valid reports whether m is a known reading mode.
func (m ReadingMode) Valid() bool {
	switch m {
	case ReadingModePagedManga, ReadingModePagedComic, ReadingModeVertical, ReadingModeWebtoon, ReadingModeNovel:
		return true
	}
	return false
}

// Context is the selector contract for one site. It tells the extraction
// engine where each field lives in the site's markup. Obtain one through
// NewContext so that defaults are applied and required fields are checked;
// the Parser never mutates it.
//
// Optional selectors may be left empty, in which case the corresponding
// field is simply not extracted.
type Context struct {
	ID   string
	Name string

	// BaseURL is the site root without a trailing slash.
	BaseURL string
	// ContentPath is the listing path segment, e.g. "manga".
	ContentPath string

	// Required.
	TitleSelector   string
	ChapterSelector string
	ImageSelector   string
	SearchSelector  string

	// Optional.
	AuthorSelector            string
	ArtistSelector            string
	SummarySelector           string
	ThumbnailSelector         string
	StatusSelector            string
	GenreSelector             string
	TagSelector               string
	AlternativeTitlesSelector string
	ChapterDateSelector       string

	// Defaulted by NewContext.
	ListingSelector      string
	ListingTitleSelector string
	CoverSelector        string
	SearchTitleSelector  string
	GenreFormSelector    string
	NavigationSelector   string

	// UpdatingSentinels are lower-case fragments marking an author or
	// artist entry as a "not yet updated" placeholder.
	UpdatingSentinels []string

	// AdultTags are lower-case tag titles that flag a tag as nsfw.
	AdultTags []string

	// StatusTerms classify free-text publication status.
	StatusTerms []StatusTerm

	// DateFormat is the layout of chapter release dates: a Go reference
	// layout, a moment-style pattern such as "MMMM DD, YYYY", or
	// DateFormatAuto. Empty means release dates are not parsed.
	DateFormat string

	// DefaultReadingMode is recommended for every title of the site.
	DefaultReadingMode ReadingMode

	// Language is the language tag assigned to chapters.
	Language string
}

// NewContext validates c and returns a copy with defaults applied.
func NewContext(c Context) (Context, error) {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.ContentPath = strings.Trim(strings.TrimSpace(c.ContentPath), "/")

	if c.BaseURL == "" {
		return Context{}, Errorf(EINVALID, "context base URL required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Context{}, Errorf(EINVALID, "context base URL must be an absolute http(s) URL: %q", c.BaseURL)
	}
	if c.ContentPath == "" {
		return Context{}, Errorf(EINVALID, "context content path required")
	}
	for name, sel := range map[string]string{
		"title":   c.TitleSelector,
		"chapter": c.ChapterSelector,
		"image":   c.ImageSelector,
		"search":  c.SearchSelector,
	} {
		if strings.TrimSpace(sel) == "" {
			return Context{}, Errorf(EINVALID, "context %s selector required", name)
		}
	}
	if c.DefaultReadingMode == "" {
		c.DefaultReadingMode = ReadingModeWebtoon
	} else if !c.DefaultReadingMode.Valid() {
		return Context{}, Errorf(EINVALID, "unknown reading mode %q", c.DefaultReadingMode)
	}

	c.ListingSelector = orDefault(c.ListingSelector, DefaultListingSelector)
	c.ListingTitleSelector = orDefault(c.ListingTitleSelector, DefaultListingTitleSelector)
	c.CoverSelector = orDefault(c.CoverSelector, DefaultCoverSelector)
	c.SearchTitleSelector = orDefault(c.SearchTitleSelector, DefaultSearchTitleSelector)
	c.GenreFormSelector = orDefault(c.GenreFormSelector, DefaultGenreFormSelector)
	c.NavigationSelector = orDefault(c.NavigationSelector, DefaultNavigationSelector)
	c.Language = orDefault(c.Language, DefaultLanguage)

	if c.ID == "" {
		c.ID = u.Hostname()
	}
	if c.Name == "" {
		c.Name = c.ID
	}

	c.UpdatingSentinels = lowerAll(c.UpdatingSentinels)
	if len(c.UpdatingSentinels) == 0 {
		c.UpdatingSentinels = []string{"updating"}
	}
	c.AdultTags = lowerAll(c.AdultTags)
	if len(c.StatusTerms) == 0 {
		c.StatusTerms = DefaultStatusTerms()
	} else {
		terms := make([]StatusTerm, 0, len(c.StatusTerms))
		for i, t := range c.StatusTerms {
			t.Keyword = strings.ToLower(strings.TrimSpace(t.Keyword))
			if t.Keyword == "" {
				return Context{}, Errorf(EINVALID, "status term %d has an empty keyword", i)
			}
			terms = append(terms, t)
		}
		c.StatusTerms = terms
	}

	return c, nil
}

// DefaultContext returns the selector contract of the stock Madara theme.
func DefaultContext(id, name, baseURL string) (Context, error) {
	return NewContext(Context{
		ID:                        id,
		Name:                      name,
		BaseURL:                   baseURL,
		ContentPath:               "manga",
		TitleSelector:             "div.post-title h1",
		AuthorSelector:            "div.author-content > a",
		ArtistSelector:            "div.artist-content > a",
		SummarySelector:           "div.description-summary div.summary__content",
		ThumbnailSelector:         "div.summary_image img",
		StatusSelector:            "div.post-status div.summary-content",
		GenreSelector:             "div.genres-content a",
		TagSelector:               "div.tags-content a",
		AlternativeTitlesSelector: "div.post-content_item:contains(\"Alternative\") div.summary-content",
		ChapterSelector:           "li.wp-manga-chapter",
		ChapterDateSelector:       "span.chapter-release-date",
		ImageSelector:             "div.page-break img",
		SearchSelector:            "div.c-tabs-item__content",
		AdultTags:                 []string{"adult", "mature", "smut", "hentai", "ecchi"},
		DateFormat:                "MMMM DD, YYYY",
	})
}

// URL joins the base URL, content path and the given path segments.
func (c Context) URL(segments ...string) string {
	parts := append([]string{c.BaseURL, c.ContentPath}, segments...)
	return strings.Join(parts, "/") + "/"
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
