package mock

import (
	"context"

	"github.com/fwojciec/madara"
)

var _ madara.Source = (*Source)(nil)

// Source is a mock implementation of madara.Source.
type Source struct {
	SiteFn        func() madara.Context
	DirectoryFn   func(ctx context.Context, req madara.DirectoryRequest) (*madara.PagedResult, error)
	ContentFn     func(ctx context.Context, contentID string) (*madara.Content, error)
	ChaptersFn    func(ctx context.Context, contentID string) ([]madara.Chapter, error)
	ChapterDataFn func(ctx context.Context, contentID, chapterID string) (*madara.ChapterData, error)
	GenresFn      func(ctx context.Context) ([]madara.Tag, error)
}

func (s *Source) Site() madara.Context {
	return s.SiteFn()
}

func (s *Source) Directory(ctx context.Context, req madara.DirectoryRequest) (*madara.PagedResult, error) {
	return s.DirectoryFn(ctx, req)
}

func (s *Source) Content(ctx context.Context, contentID string) (*madara.Content, error) {
	return s.ContentFn(ctx, contentID)
}

func (s *Source) Chapters(ctx context.Context, contentID string) ([]madara.Chapter, error) {
	return s.ChaptersFn(ctx, contentID)
}

func (s *Source) ChapterData(ctx context.Context, contentID, chapterID string) (*madara.ChapterData, error) {
	return s.ChapterDataFn(ctx, contentID, chapterID)
}

func (s *Source) Genres(ctx context.Context) ([]madara.Tag, error) {
	return s.GenresFn(ctx)
}
