package extract

import (
	"strings"

	"github.com/fwojciec/madara"
)

// Content extracts the profile of one title. The title is mandatory;
// every other field degrades to empty when its selector is unset or
// matches nothing.
func (p *Parser) Content(site madara.Context, html, contentID string) (*madara.Content, error) {
	if strings.Trim(strings.TrimSpace(contentID), "/") == "" {
		return nil, madara.Errorf(madara.EINVALID, "content id required")
	}
	doc, err := p.loader.Load(html)
	if err != nil {
		return nil, err
	}

	title, err := contentTitle(site, doc)
	if err != nil {
		return nil, err
	}

	authors := creatorTags(site, doc, site.AuthorSelector, madara.AuthorTagPrefix)
	artists := creatorTags(site, doc, site.ArtistSelector, madara.ArtistTagPrefix)
	genres := genreTags(site, doc, site.GenreSelector, "")
	hashtags := genreTags(site, doc, site.TagSelector, madara.HashtagTagPrefix)

	chapters, err := p.chapters(site, doc, contentID)
	if err != nil {
		return nil, err
	}

	content := &madara.Content{
		Title:                  title,
		Cover:                  cover(site, doc),
		Summary:                summary(site, doc),
		Creators:               creators(authors, artists),
		Status:                 status(site, doc),
		IsNSFW:                 anyNSFW(genres),
		RecommendedReadingMode: site.DefaultReadingMode,
		AdditionalTitles:       additionalTitles(site, doc),
		WebURL:                 site.URL(contentID),
		Properties: []madara.Property{
			{ID: madara.PropertyMain, Title: madara.PropertyMainTitle, Tags: genres},
			{ID: madara.PropertySupporting, Title: madara.PropertySupportingTitle, Tags: hashtags},
			{ID: madara.PropertyCreators, Title: madara.PropertyCreatorsTitle, Tags: credits(authors, artists)},
		},
	}
	if len(chapters) > 0 {
		content.Chapters = chapters
	}
	return content, nil
}

// contentTitle reads the title node's own text, excluding child elements
// such as badges or alternate-title spans.
func contentTitle(site madara.Context, doc madara.Document) (string, error) {
	nodes := doc.Find(site.TitleSelector)
	if nodes.Len() == 0 {
		return "", madara.Errorf(madara.ECONTRACT, "title selector %q matched nothing", site.TitleSelector)
	}
	title := strings.TrimSpace(nodes.First().OwnText())
	if title == "" {
		return "", madara.Errorf(madara.EMISSING, "title not found in %q", site.TitleSelector)
	}
	return title, nil
}

// creatorTags maps author or artist anchors to tags, dropping placeholder
// entries. Ids are prefix + lower-cased title.
func creatorTags(site madara.Context, doc madara.Document, selector, prefix string) []madara.Tag {
	tags := []madara.Tag{}
	if selector == "" {
		return tags
	}
	seen := make(map[string]bool)
	doc.Find(selector).Each(func(_ int, s madara.Selection) {
		a := madara.AnchorOf(s)
		if !site.NotUpdating(a) {
			return
		}
		id := prefix + strings.ToLower(a.Title)
		if seen[id] {
			return
		}
		seen[id] = true
		tags = append(tags, madara.Tag{ID: id, Title: a.Title, NSFW: site.IsAdult(a.Title)})
	})
	return tags
}

// creators is the union of author and artist names, authors first,
// deduplicated by case-insensitive title in first-seen order.
func creators(authors, artists []madara.Tag) []string {
	names := []string{}
	seen := make(map[string]bool)
	for _, t := range append(append([]madara.Tag(nil), authors...), artists...) {
		key := strings.ToLower(strings.TrimSpace(t.Title))
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, t.Title)
	}
	return names
}

// credits relabels creator tags with their role.
func credits(authors, artists []madara.Tag) []madara.Tag {
	tags := make([]madara.Tag, 0, len(authors)+len(artists))
	for _, t := range authors {
		tags = append(tags, madara.Tag{ID: t.ID, Title: "Story By " + t.Title, NSFW: t.NSFW})
	}
	for _, t := range artists {
		tags = append(tags, madara.Tag{ID: t.ID, Title: "Art By " + t.Title, NSFW: t.NSFW})
	}
	return tags
}

// genreTags maps taxonomy anchors to tags identified by the last path
// segment of their link. Anchors without a slug or title are dropped.
func genreTags(site madara.Context, doc madara.Document, selector, prefix string) []madara.Tag {
	tags := []madara.Tag{}
	if selector == "" {
		return tags
	}
	seen := make(map[string]bool)
	doc.Find(selector).Each(func(_ int, s madara.Selection) {
		a := madara.AnchorOf(s)
		slug := madara.Slug(a.Link)
		if slug == "" || a.Title == "" {
			return
		}
		id := prefix + slug
		if seen[id] {
			return
		}
		seen[id] = true
		tags = append(tags, madara.Tag{ID: id, Title: a.Title, NSFW: site.IsAdult(a.Title)})
	})
	return tags
}

func anyNSFW(tags []madara.Tag) bool {
	for _, t := range tags {
		if t.NSFW {
			return true
		}
	}
	return false
}

// summary prefers paragraph text joined by blank lines, which keeps the
// paragraph structure, and falls back to the container text.
func summary(site madara.Context, doc madara.Document) string {
	if site.SummarySelector == "" {
		return ""
	}
	container := doc.Find(site.SummarySelector)
	if container.Len() == 0 {
		return ""
	}

	var paragraphs []string
	container.Find("p").Each(func(_ int, s madara.Selection) {
		if text := normalizeLines(s.LineText()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n\n")
	}
	return normalizeLines(container.LineText())
}

// normalizeLines converts line breaks to "\n" and trims every line.
func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func cover(site madara.Context, doc madara.Document) string {
	if site.ThumbnailSelector == "" {
		return ""
	}
	return madara.ImageURL(doc.Find(site.ThumbnailSelector).First())
}

// status classifies the last status node; Madara renders release year
// and status in sibling nodes matching the same selector.
func status(site madara.Context, doc madara.Document) madara.Status {
	if site.StatusSelector == "" {
		return madara.StatusUnknown
	}
	return madara.ParseStatus(doc.Find(site.StatusSelector).Last().Text(), site.StatusTerms)
}

// additionalTitles splits the alternate-title text on ";". No segments
// means absent.
func additionalTitles(site madara.Context, doc madara.Document) []string {
	if site.AlternativeTitlesSelector == "" {
		return nil
	}
	var titles []string
	for _, t := range strings.Split(doc.Find(site.AlternativeTitlesSelector).First().Text(), ";") {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}
