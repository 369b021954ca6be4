// Package slog provides log/slog decorators for the madara services.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/madara"
)

var (
	_ madara.Fetcher    = (*LoggingFetcher)(nil)
	_ madara.Fetcher    = (*LoggingPostFetcher)(nil)
	_ madara.FormPoster = (*LoggingPostFetcher)(nil)
)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   madara.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next madara.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingPostFetcher is a LoggingFetcher for fetchers that can also
// submit forms.
type LoggingPostFetcher struct {
	*LoggingFetcher
	poster madara.FormPoster
}

// Post logs the form submission and delegates to the wrapped fetcher.
func (f *LoggingPostFetcher) Post(ctx context.Context, url string, form url.Values) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("post",
			"url", url,
			"action", form.Get("action"),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.poster.Post(ctx, url, form)
}

// WrapFetcher decorates next with logging, keeping its FormPoster
// capability when it has one.
func WrapFetcher(next madara.Fetcher, logger *slog.Logger) madara.Fetcher {
	lf := NewLoggingFetcher(next, logger)
	if poster, ok := next.(madara.FormPoster); ok {
		return &LoggingPostFetcher{LoggingFetcher: lf, poster: poster}
	}
	return lf
}
