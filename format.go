package madara

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatContent renders a title profile as plain text for display.
// Empty fields are omitted; sections are separated by blank lines.
func FormatContent(c *Content) string {
	if c == nil {
		return ""
	}

	var header []string
	header = append(header, "# "+c.Title)
	if len(c.AdditionalTitles) > 0 {
		header = append(header, "Also known as: "+strings.Join(c.AdditionalTitles, "; "))
	}
	if len(c.Creators) > 0 {
		header = append(header, "Creators: "+strings.Join(c.Creators, ", "))
	}
	header = append(header, "Status: "+string(c.Status))
	if c.IsNSFW {
		header = append(header, "NSFW: yes")
	}
	if c.Cover != "" {
		header = append(header, "Cover: "+c.Cover)
	}

	parts := []string{strings.Join(header, "\n")}
	for _, p := range c.Properties {
		if len(p.Tags) == 0 {
			continue
		}
		titles := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			titles = append(titles, t.Title)
		}
		parts = append(parts, "## "+p.Title+"\n"+strings.Join(titles, ", "))
	}
	if c.Summary != "" {
		parts = append(parts, "## Summary\n"+c.Summary)
	}
	if len(c.Chapters) > 0 {
		parts = append(parts, "## Chapters\n"+FormatChapters(c.Chapters))
	}

	return strings.Join(parts, "\n\n")
}

// FormatChapters renders one line per chapter in index order.
func FormatChapters(chapters []Chapter) string {
	lines := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		lines = append(lines, fmt.Sprintf("%4d  %-8s %s  %s  (%s)",
			ch.Index, FormatNumber(ch.Number), ch.Date.Format("2006-01-02"), ch.Title, ch.ChapterID))
	}
	return strings.Join(lines, "\n")
}

// FormatHighlights renders one "id  title" line per highlight.
func FormatHighlights(highlights []Highlight) string {
	lines := make([]string, 0, len(highlights))
	for _, h := range highlights {
		lines = append(lines, h.ID+"  "+h.Title)
	}
	return strings.Join(lines, "\n")
}

// FormatNumber renders a chapter number, "?" for NaN.
func FormatNumber(n float64) string {
	if math.IsNaN(n) {
		return "?"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
