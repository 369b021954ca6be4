package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/madara"
)

// Ensure LoggingSource implements madara.Source.
var _ madara.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   madara.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next madara.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Site delegates to the wrapped source.
func (s *LoggingSource) Site() madara.Context {
	return s.next.Site()
}

func (s *LoggingSource) Directory(ctx context.Context, req madara.DirectoryRequest) (result *madara.PagedResult, err error) {
	defer func(begin time.Time) {
		var count int
		if result != nil {
			count = len(result.Results)
		}
		s.logger.Info("directory",
			"site", s.next.Site().ID,
			"list", req.List,
			"query", req.Query,
			"page", req.Page,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Directory(ctx, req)
}

func (s *LoggingSource) Content(ctx context.Context, contentID string) (content *madara.Content, err error) {
	defer func(begin time.Time) {
		s.logger.Info("content",
			"site", s.next.Site().ID,
			"content", contentID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Content(ctx, contentID)
}

func (s *LoggingSource) Chapters(ctx context.Context, contentID string) (chapters []madara.Chapter, err error) {
	defer func(begin time.Time) {
		s.logger.Info("chapters",
			"site", s.next.Site().ID,
			"content", contentID,
			"count", len(chapters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Chapters(ctx, contentID)
}

func (s *LoggingSource) ChapterData(ctx context.Context, contentID, chapterID string) (data *madara.ChapterData, err error) {
	defer func(begin time.Time) {
		var pages int
		if data != nil {
			pages = len(data.Pages)
		}
		s.logger.Info("chapter data",
			"site", s.next.Site().ID,
			"content", contentID,
			"chapter", chapterID,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ChapterData(ctx, contentID, chapterID)
}

func (s *LoggingSource) Genres(ctx context.Context) (genres []madara.Tag, err error) {
	defer func(begin time.Time) {
		s.logger.Info("genres",
			"site", s.next.Site().ID,
			"count", len(genres),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Genres(ctx)
}
