package madara

import (
	"context"
	"net/url"
)

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to pass JavaScript challenges.
type Fetcher interface {
	// Fetch retrieves the document at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// FormPoster submits url-encoded forms. Madara serves AJAX listings and
// chapter lists in response to POST requests.
type FormPoster interface {
	Post(ctx context.Context, url string, form url.Values) (html string, err error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
