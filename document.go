package madara

// Selection is a set of nodes from a parsed HTML document, queried with
// CSS selectors. Methods on an empty Selection return empty results.
type Selection interface {
	// Find returns the descendants of every node matching selector.
	Find(selector string) Selection

	// First returns the first node of the set.
	First() Selection

	// Last returns the last node of the set.
	Last() Selection

	// Len returns the number of nodes in the set.
	Len() int

	// Each calls fn for every node in document order.
	Each(fn func(i int, s Selection))

	// Attr returns the attribute of the first node.
	Attr(name string) (string, bool)

	// Text returns the combined text of the nodes including descendants.
	Text() string

	// LineText is Text with every <br> read as a line break. The document
	// is not modified.
	LineText() string

	// OwnText returns the text of the first node after removing all of
	// its child elements from a copy of it. The document is not modified.
	OwnText() string
}

// Document is the root selection of a parsed HTML document.
type Document interface {
	Selection
}

// DocumentLoader parses HTML into a queryable Document.
type DocumentLoader interface {
	Load(html string) (Document, error)
}
