package madara

import (
	"context"
	"time"
)

// Entry is a title saved in the local library.
type Entry struct {
	ID           string    `json:"id"`
	SiteID       string    `json:"siteId"`
	ContentID    string    `json:"contentId"`
	Title        string    `json:"title"`
	Status       Status    `json:"status"`
	IsNSFW       bool      `json:"isNSFW"`
	ChapterCount int       `json:"chapterCount"`
	ChaptersHash string    `json:"chaptersHash"`
	Content      *Content  `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewEntry builds an unsaved entry for content extracted from a site.
func NewEntry(siteID, contentID string, content *Content) *Entry {
	e := &Entry{
		SiteID:    siteID,
		ContentID: contentID,
		Content:   content,
	}
	if content != nil {
		e.Title = content.Title
		e.Status = content.Status
		e.IsNSFW = content.IsNSFW
		e.ChapterCount = len(content.Chapters)
	}
	return e
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.SiteID == "" {
		return Errorf(EINVALID, "entry site ID required")
	}
	if e.ContentID == "" {
		return Errorf(EINVALID, "entry content ID required")
	}
	if e.Content == nil {
		return Errorf(EINVALID, "entry content required")
	}
	return nil
}

// LibraryService represents a service for managing library entries.
type LibraryService interface {
	// SaveEntry creates the entry or updates the entry with the same site
	// and content id. Reports whether the chapter list changed.
	SaveEntry(ctx context.Context, entry *Entry) (changed bool, err error)

	// FindEntryByID retrieves an entry by ID.
	// Returns ENOTFOUND if entry does not exist.
	FindEntryByID(ctx context.Context, id string) (*Entry, error)

	// FindEntry retrieves an entry by site and content id.
	// Returns ENOTFOUND if entry does not exist.
	FindEntry(ctx context.Context, siteID, contentID string) (*Entry, error)

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// DeleteEntry permanently removes an entry.
	// Returns ENOTFOUND if entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	SiteID *string `json:"siteId"`
	Status *Status `json:"status"`
	NSFW   *bool   `json:"nsfw"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EntryStore persists entries with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type EntryStore interface {
	Save(ctx context.Context, entry *Entry) error
	Commit() error
	Abort() error
}
