package madara

import (
	"encoding/json"
	"math"
	"time"
)

// Tag id prefixes for derived tags.
const (
	AuthorTagPrefix  = "author|"
	ArtistTagPrefix  = "artist|"
	HashtagTagPrefix = "hashtag|"
)

// Property ids and titles of the three fixed Content property groups.
const (
	PropertyMain       = "main"
	PropertySupporting = "supporting"
	PropertyCreators   = "creators"

	PropertyMainTitle       = "Genres"
	PropertySupportingTitle = "Tags"
	PropertyCreatorsTitle   = "Credits"
)

// Highlight is the minimal summary of a title shown in a listing row.
type Highlight struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cover string `json:"cover"`
}

// Tag is a classification label. Two tags are the same tag when both
// ID and Title are equal.
type Tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	NSFW  bool   `json:"nsfw"`
}

// Property is a named, ordered group of tags.
type Property struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tags  []Tag  `json:"tags"`
}

// Content is the full profile of one title.
type Content struct {
	Title                  string      `json:"title"`
	Cover                  string      `json:"cover"`
	Summary                string      `json:"summary,omitempty"`
	Creators               []string    `json:"creators"`
	Status                 Status      `json:"status"`
	IsNSFW                 bool        `json:"isNSFW"`
	Properties             []Property  `json:"properties"`
	Chapters               []Chapter   `json:"chapters,omitempty"`
	RecommendedReadingMode ReadingMode `json:"recommendedReadingMode"`
	AdditionalTitles       []string    `json:"additionalTitles,omitempty"`
	WebURL                 string      `json:"webUrl,omitempty"`
}

// Property returns the property with the given id, or nil.
func (c *Content) Property(id string) *Property {
	for i := range c.Properties {
		if c.Properties[i].ID == id {
			return &c.Properties[i]
		}
	}
	return nil
}

// Chapter is one readable unit within a title. Index is the 0-based
// position in listing order and is always contiguous. Number may be NaN
// when no number can be derived from ChapterID.
type Chapter struct {
	Index     int       `json:"index"`
	ChapterID string    `json:"chapterId"`
	Number    float64   `json:"number"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
}

// MarshalJSON encodes a NaN Number as null.
func (c Chapter) MarshalJSON() ([]byte, error) {
	type alias Chapter
	var number *float64
	if !math.IsNaN(c.Number) && !math.IsInf(c.Number, 0) {
		number = &c.Number
	}
	return json.Marshal(struct {
		alias
		Number *float64 `json:"number"`
	}{alias: alias(c), Number: number})
}

// UnmarshalJSON decodes a null Number as NaN.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	type alias Chapter
	aux := struct {
		*alias
		Number *float64 `json:"number"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Number == nil {
		c.Number = math.NaN()
	} else {
		c.Number = *aux.Number
	}
	return nil
}

// ChapterPage is one page image of a chapter.
type ChapterPage struct {
	URL string `json:"url"`
}

// ChapterData is the reading payload of one chapter, pages in document order.
type ChapterData struct {
	Pages []ChapterPage `json:"pages"`
}

// PagedResult is one page of listing or search results.
type PagedResult struct {
	Results    []Highlight `json:"results"`
	IsLastPage bool        `json:"isLastPage"`
}

// Status is the publication status of a title.
type Status string

// Status constants.
const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = "unknown"
)

// StatusTerm maps a lower-case keyword to a status.
type StatusTerm struct {
	Keyword string
	Status  Status
}

// DefaultStatusTerms returns the status vocabulary used by most sites.
// Terms are matched in order, so more specific terms come first.
func DefaultStatusTerms() []StatusTerm {
	return []StatusTerm{
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"dropped", StatusCancelled},
		{"discontinued", StatusCancelled},
		{"hiatus", StatusHiatus},
		{"on hold", StatusHiatus},
		{"paused", StatusHiatus},
		{"completed", StatusCompleted},
		{"complete", StatusCompleted},
		{"finished", StatusCompleted},
		{"ongoing", StatusOngoing},
		{"on going", StatusOngoing},
		{"updating", StatusOngoing},
		{"releasing", StatusOngoing},
	}
}
