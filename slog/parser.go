package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/madara"
)

// Ensure LoggingParser implements madara.Parser.
var _ madara.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with debug logging.
type LoggingParser struct {
	next   madara.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next madara.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

func (p *LoggingParser) Highlights(site madara.Context, html string) (highlights []madara.Highlight, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse highlights",
			"site", site.ID,
			"count", len(highlights),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Highlights(site, html)
}

func (p *LoggingParser) Content(site madara.Context, html, contentID string) (content *madara.Content, err error) {
	defer func(begin time.Time) {
		var chapters int
		if content != nil {
			chapters = len(content.Chapters)
		}
		p.logger.Info("parse content",
			"site", site.ID,
			"content", contentID,
			"chapters", chapters,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Content(site, html, contentID)
}

func (p *LoggingParser) Chapters(site madara.Context, html, contentID string) (chapters []madara.Chapter, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse chapters",
			"site", site.ID,
			"content", contentID,
			"count", len(chapters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Chapters(site, html, contentID)
}

func (p *LoggingParser) ChapterData(site madara.Context, html string) (data *madara.ChapterData, err error) {
	defer func(begin time.Time) {
		var pages int
		if data != nil {
			pages = len(data.Pages)
		}
		p.logger.Info("parse chapter data",
			"site", site.ID,
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ChapterData(site, html)
}

func (p *LoggingParser) Genres(site madara.Context, html string) (genres []madara.Tag, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse genres",
			"site", site.ID,
			"count", len(genres),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Genres(site, html)
}

func (p *LoggingParser) SearchResponse(site madara.Context, html string) (result *madara.PagedResult, err error) {
	defer func(begin time.Time) {
		var count int
		var last bool
		if result != nil {
			count = len(result.Results)
			last = result.IsLastPage
		}
		p.logger.Info("parse search",
			"site", site.ID,
			"count", count,
			"last", last,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.SearchResponse(site, html)
}
