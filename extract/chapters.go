package extract

import (
	"strings"

	"github.com/fwojciec/madara"
)

// Chapters extracts the chapter list of contentID in document order.
// One row without an id fails the whole list.
func (p *Parser) Chapters(site madara.Context, html, contentID string) ([]madara.Chapter, error) {
	if strings.Trim(strings.TrimSpace(contentID), "/") == "" {
		return nil, madara.Errorf(madara.EINVALID, "content id required")
	}
	doc, err := p.loader.Load(html)
	if err != nil {
		return nil, err
	}
	return p.chapters(site, doc, contentID)
}

func (p *Parser) chapters(site madara.Context, doc madara.Document, contentID string) ([]madara.Chapter, error) {
	rows := doc.Find(site.ChapterSelector)
	chapters := make([]madara.Chapter, 0, rows.Len())
	now := p.now()

	var err error
	rows.Each(func(i int, row madara.Selection) {
		if err != nil {
			return
		}
		a := madara.AnchorOf(row.Find("a").First())
		id := site.TrimID(a.Link, contentID)
		if id == "" {
			err = madara.Errorf(madara.EMISSING, "chapter %d of %q has no id (href %q)", i, contentID, a.Link)
			return
		}

		date := now
		if site.DateFormat != "" && site.ChapterDateSelector != "" {
			date, err = madara.ParseDate(releaseDateText(row.Find(site.ChapterDateSelector).First()), site.DateFormat, now)
			if err != nil {
				return
			}
		}

		chapters = append(chapters, madara.Chapter{
			Index:     len(chapters),
			ChapterID: id,
			Number:    p.chapterNumber(id),
			Date:      date,
			Title:     a.Title,
			Language:  site.Language,
		})
	})
	if err != nil {
		return nil, err
	}
	return chapters, nil
}

// releaseDateText reads the date node text. Recent chapters carry a "new"
// badge whose anchor title holds a relative date instead.
func releaseDateText(s madara.Selection) string {
	if text := strings.TrimSpace(s.Text()); text != "" {
		return text
	}
	title, _ := s.Find("a").First().Attr("title")
	return title
}
