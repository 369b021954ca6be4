package madara

// Theme identifies the site engine that rendered a page.
type Theme string

// Theme constants.
const (
	ThemeUnknown Theme = "unknown"
	ThemeMadara  Theme = "madara"
)

// Probe is what can be learned about a site from one of its pages.
type Probe struct {
	Theme Theme `json:"theme"`
	// ContentPath is the listing path segment guessed from title links.
	ContentPath string `json:"contentPath,omitempty"`
	// AJAXChapters reports a chapter holder that is filled by a POST request.
	AJAXChapters bool `json:"ajaxChapters"`
}

// ThemeDetector identifies the theme of a page.
type ThemeDetector interface {
	Detect(html, baseURL string) Probe
}
