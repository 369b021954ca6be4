package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/madara"
)

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return fail(deps, madara.Errorf(madara.EINVALID, "invalid url %q", c.URL))
	}
	baseURL := u.Scheme + "://" + u.Host

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return fail(deps, err)
	}

	probe := deps.Detector.Detect(html, baseURL)
	fmt.Fprintf(deps.Stdout, "theme: %s\n", probe.Theme)
	if probe.Theme != madara.ThemeMadara {
		return nil
	}
	if probe.ContentPath != "" {
		fmt.Fprintf(deps.Stdout, "content path: %s\n", probe.ContentPath)
	}
	fmt.Fprintf(deps.Stdout, "ajax chapters: %t\n", probe.AJAXChapters)

	if site, err := deps.Sites.ForURL(c.URL); err == nil {
		fmt.Fprintf(deps.Stdout, "profile: %s\n", site.ID)
	} else {
		fmt.Fprintln(deps.Stdout, "profile: none (add one with --sites-file)")
	}
	return nil
}
