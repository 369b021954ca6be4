package mock

import "github.com/fwojciec/madara"

var (
	_ madara.Parser         = (*Parser)(nil)
	_ madara.ThemeDetector  = (*ThemeDetector)(nil)
	_ madara.DocumentLoader = (*DocumentLoader)(nil)
)

// Parser is a mock implementation of madara.Parser.
type Parser struct {
	HighlightsFn     func(site madara.Context, html string) ([]madara.Highlight, error)
	ContentFn        func(site madara.Context, html, contentID string) (*madara.Content, error)
	ChaptersFn       func(site madara.Context, html, contentID string) ([]madara.Chapter, error)
	ChapterDataFn    func(site madara.Context, html string) (*madara.ChapterData, error)
	GenresFn         func(site madara.Context, html string) ([]madara.Tag, error)
	SearchResponseFn func(site madara.Context, html string) (*madara.PagedResult, error)
}

func (p *Parser) Highlights(site madara.Context, html string) ([]madara.Highlight, error) {
	return p.HighlightsFn(site, html)
}

func (p *Parser) Content(site madara.Context, html, contentID string) (*madara.Content, error) {
	return p.ContentFn(site, html, contentID)
}

func (p *Parser) Chapters(site madara.Context, html, contentID string) ([]madara.Chapter, error) {
	return p.ChaptersFn(site, html, contentID)
}

func (p *Parser) ChapterData(site madara.Context, html string) (*madara.ChapterData, error) {
	return p.ChapterDataFn(site, html)
}

func (p *Parser) Genres(site madara.Context, html string) ([]madara.Tag, error) {
	return p.GenresFn(site, html)
}

func (p *Parser) SearchResponse(site madara.Context, html string) (*madara.PagedResult, error) {
	return p.SearchResponseFn(site, html)
}

// ThemeDetector is a mock implementation of madara.ThemeDetector.
type ThemeDetector struct {
	DetectFn func(html, baseURL string) madara.Probe
}

func (d *ThemeDetector) Detect(html, baseURL string) madara.Probe {
	return d.DetectFn(html, baseURL)
}

// DocumentLoader is a mock implementation of madara.DocumentLoader.
type DocumentLoader struct {
	LoadFn func(html string) (madara.Document, error)
}

func (l *DocumentLoader) Load(html string) (madara.Document, error) {
	return l.LoadFn(html)
}
