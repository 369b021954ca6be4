// Package extract implements madara.Parser, the selector-driven extraction
// engine. It depends only on the madara.Document capability, so any HTML
// backend that implements madara.DocumentLoader can drive it.
package extract

import (
	"strings"
	"time"

	"github.com/fwojciec/madara"
)

// Ensure Parser implements madara.Parser at compile time.
var _ madara.Parser = (*Parser)(nil)

// Parser extracts domain values from HTML using a site's selector context.
// It holds no per-call state and is safe for concurrent use.
type Parser struct {
	loader        madara.DocumentLoader
	chapterNumber func(chapterID string) float64
	now           func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithChapterNumber replaces the function that derives a chapter number
// from a chapter id. Defaults to madara.ChapterNumber.
func WithChapterNumber(fn func(chapterID string) float64) Option {
	return func(p *Parser) {
		p.chapterNumber = fn
	}
}

// WithClock sets the time source used for undated and relative chapter
// release dates. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a Parser that parses HTML with loader.
func NewParser(loader madara.DocumentLoader, opts ...Option) *Parser {
	p := &Parser{
		loader:        loader,
		chapterNumber: madara.ChapterNumber,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Highlights extracts listing rows. Rows missing a title or an id are
// skipped; listings routinely carry decorative rows.
func (p *Parser) Highlights(site madara.Context, html string) ([]madara.Highlight, error) {
	doc, err := p.loader.Load(html)
	if err != nil {
		return nil, err
	}

	highlights := []madara.Highlight{}
	doc.Find(site.ListingSelector).Each(func(_ int, row madara.Selection) {
		a := madara.AnchorOf(row.Find(site.ListingTitleSelector).First())
		id := site.TrimID(a.Link)
		if a.Title == "" || id == "" {
			return
		}
		highlights = append(highlights, madara.Highlight{
			ID:    id,
			Title: a.Title,
			Cover: madara.ImageURL(row.Find(site.CoverSelector).First()),
		})
	})
	return highlights, nil
}

// SearchResponse extracts one page of search results. Unlike listings,
// a result without a title or id fails the whole page.
func (p *Parser) SearchResponse(site madara.Context, html string) (*madara.PagedResult, error) {
	doc, err := p.loader.Load(html)
	if err != nil {
		return nil, err
	}

	result := &madara.PagedResult{Results: []madara.Highlight{}}
	doc.Find(site.SearchSelector).Each(func(i int, row madara.Selection) {
		if err != nil {
			return
		}
		anchor := row.Find("a").First()
		title, _ := anchor.Attr("title")
		title = strings.TrimSpace(title)
		if title == "" {
			title = strings.TrimSpace(row.Find(site.SearchTitleSelector).First().Text())
		}
		if title == "" {
			err = madara.Errorf(madara.EMISSING, "search result %d has no title", i)
			return
		}
		link, _ := anchor.Attr("href")
		id := site.TrimID(link)
		if id == "" {
			err = madara.Errorf(madara.EMISSING, "search result %q has no id (href %q)", title, link)
			return
		}
		result.Results = append(result.Results, madara.Highlight{
			ID:    id,
			Title: title,
			Cover: madara.ImageURL(row.Find(site.CoverSelector).First()),
		})
	})
	if err != nil {
		return nil, err
	}

	result.IsLastPage = doc.Find(site.NavigationSelector).Len() == 0
	return result, nil
}

// ChapterData extracts page image URLs in document order. A node without
// a resolvable URL yields an empty page rather than being dropped.
// Returns ECONTRACT if the image selector matches nothing.
func (p *Parser) ChapterData(site madara.Context, html string) (*madara.ChapterData, error) {
	doc, err := p.loader.Load(html)
	if err != nil {
		return nil, err
	}

	images := doc.Find(site.ImageSelector)
	if images.Len() == 0 {
		return nil, madara.Errorf(madara.ECONTRACT, "image selector %q matched nothing", site.ImageSelector)
	}

	data := &madara.ChapterData{Pages: make([]madara.ChapterPage, 0, images.Len())}
	images.Each(func(_ int, img madara.Selection) {
		data.Pages = append(data.Pages, madara.ChapterPage{URL: strings.TrimSpace(madara.ImageURL(img))})
	})
	return data, nil
}

// Genres extracts the site taxonomy from the genre filter form: one tag
// per checkbox, identified by the checkbox value.
func (p *Parser) Genres(site madara.Context, html string) ([]madara.Tag, error) {
	doc, err := p.loader.Load(html)
	if err != nil {
		return nil, err
	}

	tags := []madara.Tag{}
	doc.Find(site.GenreFormSelector).Each(func(_ int, box madara.Selection) {
		id, _ := box.Find("input[type=checkbox]").First().Attr("value")
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}
		title := strings.TrimSpace(box.Find("label").First().Text())
		if title == "" {
			title = id
		}
		tags = append(tags, madara.Tag{ID: id, Title: title, NSFW: site.IsAdult(title)})
	})
	return tags, nil
}
