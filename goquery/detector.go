package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/madara"
)

var _ madara.ThemeDetector = (*Detector)(nil)

// Detector identifies Madara sites from HTML content.
// It checks theme asset paths, body classes, and structural markers
// that the Madara theme and its child themes share.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and reports the theme and listing path of the site.
// Returns ThemeUnknown if the theme cannot be determined.
func (d *Detector) Detect(html, baseURL string) madara.Probe {
	probe := madara.Probe{Theme: madara.ThemeUnknown}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return probe
	}

	// Theme assets are the most reliable marker when present
	if d.hasSelector(doc, "link[href*='/themes/madara'], script[src*='/themes/madara'], link#madara-css-css") ||
		d.hasSelector(doc, "body.wp-manga-template, body.manga-page, body.madara-theme") ||
		d.hasSelector(doc, "#manga-chapters-holder, li.wp-manga-chapter") ||
		d.hasSelector(doc, ".page-item-detail") && d.hasSelector(doc, "input[name='post_type'][value='wp-manga']") {
		probe.Theme = madara.ThemeMadara
	}
	if probe.Theme == madara.ThemeUnknown {
		return probe
	}

	probe.ContentPath = d.contentPath(doc, baseURL)

	// An empty holder is filled by POST {base}/{path}/{id}/ajax/chapters/
	holder := doc.Find("#manga-chapters-holder")
	probe.AJAXChapters = holder.Length() > 0 && holder.Find("li.wp-manga-chapter").Length() == 0

	return probe
}

// contentPath returns the first path segment of title links on the
// same host, which is the listing path ("manga", "series", ...).
func (d *Detector) contentPath(doc *goquery.Document, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}

	counts := make(map[string]int)
	best := ""
	doc.Find(".page-item-detail h3 a, .post-title a, .c-tabs-item__content a, li.wp-manga-chapter a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		u, err := base.Parse(href)
		if err != nil || !strings.EqualFold(u.Hostname(), base.Hostname()) {
			return
		}
		segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if segment == "" {
			return
		}
		counts[segment]++
		if counts[segment] > counts[best] {
			best = segment
		}
	})
	return best
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
