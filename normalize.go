package madara

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateFormatAuto makes ParseDate detect the layout of each date.
const DateFormatAuto = "auto"

// imageAttrs are checked in order; lazy-load attributes hold the real URL
// while src often holds a placeholder.
var imageAttrs = []string{"data-src", "data-lazy-src", "data-cfsrc", "data-original", "srcset", "src"}

// ImageURL resolves the image URL of the first node in s. Lazy-load data
// attributes win over src. Returns "" when no attribute holds a URL.
func ImageURL(s Selection) string {
	for _, name := range imageAttrs {
		v, ok := s.Attr(name)
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if name == "srcset" {
			v = firstSrcsetURL(v)
		}
		if v == "" || strings.HasPrefix(v, "data:") {
			continue
		}
		if strings.HasPrefix(v, "//") {
			v = "https:" + v
		}
		return v
	}
	return ""
}

func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Anchor is the display title and link of an anchor node.
type Anchor struct {
	Title string
	Link  string
}

// AnchorOf reads the trimmed text and href of the first node in s.
func AnchorOf(s Selection) Anchor {
	link, _ := s.Attr("href")
	return Anchor{
		Title: strings.TrimSpace(s.Text()),
		Link:  strings.TrimSpace(link),
	}
}

// NotUpdating reports whether a is a real entry rather than an empty or
// "not yet updated" placeholder.
func (c Context) NotUpdating(a Anchor) bool {
	title := strings.ToLower(a.Title)
	if title == "" {
		return false
	}
	for _, s := range c.UpdatingSentinels {
		if strings.Contains(title, s) {
			return false
		}
	}
	return true
}

// IsAdult reports whether a tag titled title is adult content.
func (c Context) IsAdult(title string) bool {
	title = strings.TrimSpace(title)
	for _, t := range c.AdultTags {
		if strings.EqualFold(strings.TrimSpace(t), title) {
			return true
		}
	}
	return false
}

// ParseStatus classifies free text into a Status by case-insensitive
// substring match against terms. Unmatched text is StatusUnknown.
func ParseStatus(text string, terms []StatusTerm) Status {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return StatusUnknown
	}
	for _, t := range terms {
		keyword := strings.ToLower(strings.TrimSpace(t.Keyword))
		if keyword != "" && strings.Contains(text, keyword) {
			return t.Status
		}
	}
	return StatusUnknown
}

var chapterNumberRe = regexp.MustCompile(`\D*(\d*-?\d*)\D*$`)

// ChapterNumber derives a chapter number from the rightmost run of digits
// in id, reading a hyphen between digits as a decimal point, so
// "chapter-12-5" is 12.5. Returns NaN when id has no digits.
func ChapterNumber(id string) float64 {
	m := chapterNumberRe.FindStringSubmatch(id)
	if m == nil {
		return math.NaN()
	}
	s := strings.ReplaceAll(m[1], "-", ".")
	if strings.Trim(s, ".") == "" {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// TrimID derives an id from href by removing the
// "{BaseURL}/{ContentPath}/{segments...}/" prefix along with any query,
// fragment and surrounding slashes. Relative hrefs are resolved against
// BaseURL and the scheme is ignored. Returns "" when href does not start
// with the prefix.
func (c Context) TrimID(href string, segments ...string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if u, err := url.Parse(href); err == nil && !u.IsAbs() {
		if base, err := url.Parse(c.BaseURL + "/"); err == nil {
			href = base.ResolveReference(u).String()
		}
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	rest, ok := strings.CutPrefix(stripScheme(href), stripScheme(c.URL(segments...)))
	if !ok {
		return ""
	}
	return strings.Trim(rest, "/")
}

func stripScheme(s string) string {
	if _, rest, ok := strings.Cut(s, "://"); ok {
		return rest
	}
	return strings.TrimPrefix(s, "//")
}

// Slug returns the last non-empty path segment of href.
func Slug(href string) string {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

var (
	relativeDateRe = regexp.MustCompile(`(?i)^(\d+|an?|one)\s+(sec|second|min|minute|hour|day|week|month|year)s?\s+ago$`)
	ordinalRe      = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)
)

// ParseDate parses the release date text under format. Empty text is now;
// relative phrases like "3 hours ago" or "yesterday" are measured from now.
// Returns EDATE when text does not match format.
func ParseDate(text, format string, now time.Time) (time.Time, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return now, nil
	}
	if t, ok := parseRelativeDate(text, now); ok {
		return t, nil
	}

	if format == DateFormatAuto {
		t, err := dateparse.ParseIn(text, time.UTC)
		if err != nil {
			return time.Time{}, Errorf(EDATE, "unrecognized date %q", text)
		}
		return t, nil
	}

	layout, ordinals := dateLayout(format)
	if ordinals {
		text = ordinalRe.ReplaceAllString(text, "$1")
	}
	t, err := time.ParseInLocation(layout, text, time.UTC)
	if err != nil {
		return time.Time{}, Errorf(EDATE, "date %q does not match format %q", text, format)
	}
	return t, nil
}

func parseRelativeDate(text string, now time.Time) (time.Time, bool) {
	switch strings.ToLower(text) {
	case "just now", "now", "today":
		return now, true
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	}

	m := relativeDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		n = 1
	}
	switch strings.ToLower(m[2]) {
	case "sec", "second":
		return now.Add(-time.Duration(n) * time.Second), true
	case "min", "minute":
		return now.Add(-time.Duration(n) * time.Minute), true
	case "hour":
		return now.Add(-time.Duration(n) * time.Hour), true
	case "day":
		return now.AddDate(0, 0, -n), true
	case "week":
		return now.AddDate(0, 0, -7*n), true
	case "month":
		return now.AddDate(0, -n, 0), true
	default:
		return now.AddDate(-n, 0, 0), true
	}
}

// momentTokens maps moment-style date tokens to Go layout elements,
// longest tokens first. Numeric month, day and hour map to the unpadded
// elements, which also accept zero-padded input.
var momentTokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"YY", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "1"},
	{"M", "1"},
	{"dddd", "Monday"},
	{"ddd", "Mon"},
	{"Do", "2"},
	{"DD", "2"},
	{"D", "2"},
	{"HH", "15"},
	{"hh", "3"},
	{"h", "3"},
	{"mm", "04"},
	{"ss", "05"},
	{"A", "PM"},
	{"a", "pm"},
}

// dateLayout converts a moment-style format to a Go layout. Formats that
// carry no year or day token are returned unchanged as Go layouts. The
// second result reports whether ordinal day suffixes must be stripped.
func dateLayout(format string) (string, bool) {
	if !strings.Contains(format, "YY") && !strings.Contains(format, "D") {
		return format, false
	}
	var (
		b        strings.Builder
		ordinals bool
	)
outer:
	for i := 0; i < len(format); {
		for _, t := range momentTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.layout)
				if t.token == "Do" {
					ordinals = true
				}
				i += len(t.token)
				continue outer
			}
		}
		b.WriteByte(format[i])
		i++
	}
	return b.String(), ordinals
}
