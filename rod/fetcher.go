// Package rod provides a headless Chrome Fetcher for sites that sit behind
// JavaScript challenges.
package rod

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/madara"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

var (
	_ madara.Fetcher    = (*Fetcher)(nil)
	_ madara.FormPoster = (*Fetcher)(nil)
)

// Default timeouts.
const (
	DefaultFetchTimeout     = 30 * time.Second
	DefaultChallengeTimeout = 15 * time.Second
)

// challengeTitles are lower-case fragments of interstitial page titles
// shown while an anti-bot check runs.
var challengeTitles = []string{
	"just a moment",
	"attention required",
	"checking your browser",
	"ddos-guard",
	"please wait",
}

// IsChallengeTitle reports whether a page title belongs to an anti-bot
// interstitial rather than the requested page.
func IsChallengeTitle(title string) bool {
	title = strings.ToLower(title)
	for _, t := range challengeTitles {
		if strings.Contains(title, t) {
			return true
		}
	}
	return false
}

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager          *BrowserManager
	managerOpts      []ManagerOption
	fetchTimeout     time.Duration
	challengeTimeout time.Duration
	closed           atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds each Fetch or Post call.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithChallengeTimeout bounds how long a page may show an anti-bot
// interstitial before Fetch gives up.
func WithChallengeTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.challengeTimeout = d
	}
}

// WithBrowserOptions passes options to the underlying BrowserManager.
func WithBrowserOptions(opts ...ManagerOption) Option {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		fetchTimeout:     DefaultFetchTimeout,
		challengeTimeout: DefaultChallengeTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(f.managerOpts...)
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits out any anti-bot interstitial and
// returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var html string
	err := f.withPage(ctx, url, func(page *rod.Page) error {
		var err error
		html, err = page.HTML()
		return err
	})
	return html, err
}

// postScript submits a url-encoded form from inside the page so that the
// request carries the cookies earned by passing the site's challenge.
const postScript = `async (url, body) => {
	const r = await fetch(url, {
		method: "POST",
		credentials: "include",
		headers: {
			"Content-Type": "application/x-www-form-urlencoded; charset=UTF-8",
			"X-Requested-With": "XMLHttpRequest",
		},
		body,
	});
	return {status: r.status, body: await r.text()};
}`

// Post opens the site root, then submits form to rawURL from that page.
func (f *Fetcher) Post(ctx context.Context, rawURL string, form url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", madara.Errorf(madara.EINVALID, "invalid url %q: %v", rawURL, err)
	}
	origin := u.Scheme + "://" + u.Host + "/"

	var body string
	err = f.withPage(ctx, origin, func(page *rod.Page) error {
		res, err := page.Eval(postScript, rawURL, form.Encode())
		if err != nil {
			return err
		}
		status := res.Value.Get("status").Int()
		switch {
		case status == http.StatusNotFound:
			return madara.Errorf(madara.ENOTFOUND, "not found: %s", rawURL)
		case status != http.StatusOK:
			return fmt.Errorf("unexpected status %d for %s", status, rawURL)
		}
		body = res.Value.Get("body").Str()
		return nil
	})
	return body, err
}

// withPage opens url in a fresh tab, waits for it to load and clear any
// challenge, then runs fn against it.
func (f *Fetcher) withPage(ctx context.Context, url string, fn func(page *rod.Page) error) error {
	if f.closed.Load() {
		return madara.Errorf(madara.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}
	if err := f.waitChallenge(ctx, page); err != nil {
		return err
	}

	if err := fn(page); err != nil {
		return err
	}
	f.manager.IncrementPageCount()
	return nil
}

// waitChallenge polls the page title until it no longer looks like an
// interstitial.
func (f *Fetcher) waitChallenge(ctx context.Context, page *rod.Page) error {
	deadline := time.Now().Add(f.challengeTimeout)
	for {
		info, err := page.Info()
		if err != nil {
			return err
		}
		if !IsChallengeTitle(info.Title) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("challenge not cleared after %s: %q", f.challengeTimeout, info.Title)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
		if err := page.WaitLoad(); err != nil {
			return err
		}
	}
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
