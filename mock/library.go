package mock

import (
	"context"

	"github.com/fwojciec/madara"
)

// Compile-time interface verification.
var (
	_ madara.LibraryService = (*LibraryService)(nil)
	_ madara.EntryStore     = (*EntryStore)(nil)
)

// LibraryService is a mock implementation of madara.LibraryService.
type LibraryService struct {
	SaveEntryFn     func(ctx context.Context, entry *madara.Entry) (bool, error)
	FindEntryByIDFn func(ctx context.Context, id string) (*madara.Entry, error)
	FindEntryFn     func(ctx context.Context, siteID, contentID string) (*madara.Entry, error)
	FindEntriesFn   func(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error)
	DeleteEntryFn   func(ctx context.Context, id string) error
}

func (s *LibraryService) SaveEntry(ctx context.Context, entry *madara.Entry) (bool, error) {
	return s.SaveEntryFn(ctx, entry)
}

func (s *LibraryService) FindEntryByID(ctx context.Context, id string) (*madara.Entry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *LibraryService) FindEntry(ctx context.Context, siteID, contentID string) (*madara.Entry, error) {
	return s.FindEntryFn(ctx, siteID, contentID)
}

func (s *LibraryService) FindEntries(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *LibraryService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}

// EntryStore is a mock implementation of madara.EntryStore.
type EntryStore struct {
	SaveFn   func(ctx context.Context, entry *madara.Entry) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *EntryStore) Save(ctx context.Context, entry *madara.Entry) error {
	return s.SaveFn(ctx, entry)
}

func (s *EntryStore) Commit() error {
	return s.CommitFn()
}

func (s *EntryStore) Abort() error {
	return s.AbortFn()
}
