package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/madara"
	"golang.org/x/net/html"
)

var (
	_ madara.DocumentLoader = (*Loader)(nil)
	_ madara.Document       = (*Selection)(nil)
)

// Loader parses HTML with goquery.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses html into a Document. The HTML parser recovers from
// malformed markup, so only read failures are reported.
func (l *Loader) Load(html string) (madara.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, madara.Errorf(madara.EINVALID, "parse html: %v", err)
	}
	return &Selection{sel: doc.Selection}, nil
}

// Selection adapts a goquery.Selection to madara.Selection.
type Selection struct {
	sel *goquery.Selection
}

// Wrap adapts an existing goquery selection.
func Wrap(sel *goquery.Selection) *Selection {
	return &Selection{sel: sel}
}

// Find returns the descendants of every node matching selector.
func (s *Selection) Find(selector string) madara.Selection {
	return &Selection{sel: s.sel.Find(selector)}
}

// First returns the first node of the set.
func (s *Selection) First() madara.Selection {
	return &Selection{sel: s.sel.First()}
}

// Last returns the last node of the set.
func (s *Selection) Last() madara.Selection {
	return &Selection{sel: s.sel.Last()}
}

// Len returns the number of nodes in the set.
func (s *Selection) Len() int {
	return s.sel.Length()
}

// Each calls fn for every node in document order.
func (s *Selection) Each(fn func(int, madara.Selection)) {
	s.sel.Each(func(i int, sel *goquery.Selection) {
		fn(i, &Selection{sel: sel})
	})
}

// Attr returns the attribute of the first node.
func (s *Selection) Attr(name string) (string, bool) {
	return s.sel.Attr(name)
}

// Text returns the combined text of the nodes including descendants.
func (s *Selection) Text() string {
	return s.sel.Text()
}

// LineText returns the text of a clone of the nodes with every br element
// replaced by a newline.
func (s *Selection) LineText() string {
	clone := s.sel.Clone()
	clone.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})
	return clone.Text()
}

// OwnText returns the text of the first node with its child elements
// removed from a clone.
func (s *Selection) OwnText() string {
	clone := s.sel.First().Clone()
	clone.Children().Remove()
	return clone.Text()
}
