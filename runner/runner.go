// Package runner binds a site's selector context to a transport and a
// parser, building the Madara theme's URLs and AJAX requests.
package runner

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/madara"
)

// Ensure Runner implements madara.Source at compile time.
var _ madara.Source = (*Runner)(nil)

// Runner serves one Madara site. Fetcher and Parser are required. When
// Fetcher also implements madara.FormPoster, listings and chapter lists
// are loaded through the theme's AJAX endpoints.
type Runner struct {
	Context madara.Context
	Fetcher madara.Fetcher
	Parser  madara.Parser

	// Loader reads the chapter holder id for the legacy admin-ajax
	// chapter endpoint. Optional.
	Loader madara.DocumentLoader

	// PageSize is the number of titles requested per AJAX listing page.
	PageSize int

	RetryDelays []time.Duration
	Log         LogFunc
}

// Order keys of the madara_load_more listing query.
var listMetaKeys = map[string]string{
	madara.ListPopular: "_wp_manga_views",
	madara.ListLatest:  "_latest_update",
}

// Listing orders of the non-AJAX listing pages.
var listOrders = map[string]string{
	madara.ListPopular: "views",
	madara.ListLatest:  "latest",
}

// Site returns the selector context the runner is bound to.
func (r *Runner) Site() madara.Context {
	return r.Context
}

// Directory returns one page of a listing or search.
func (r *Runner) Directory(ctx context.Context, req madara.DirectoryRequest) (*madara.PagedResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Query != "" {
		html, err := r.get(ctx, r.searchURL(req.Query, req.Page))
		if err != nil {
			return nil, err
		}
		return r.Parser.SearchResponse(r.Context, html)
	}

	var (
		html string
		err  error
	)
	if poster, ok := r.Fetcher.(madara.FormPoster); ok {
		html, err = r.post(ctx, poster, r.ajaxURL(), r.loadMoreForm(req))
	} else {
		html, err = r.get(ctx, fmt.Sprintf("%s/%s/page/%d/?m_orderby=%s", r.Context.BaseURL, r.Context.ContentPath, req.Page, listOrders[req.List]))
	}
	if err != nil {
		return nil, err
	}

	highlights, err := r.Parser.Highlights(r.Context, html)
	if err != nil {
		return nil, err
	}
	return &madara.PagedResult{Results: highlights, IsLastPage: len(highlights) == 0}, nil
}

// Content returns the profile of a title. Chapters missing from the
// title page are loaded through the AJAX chapter endpoints.
func (r *Runner) Content(ctx context.Context, contentID string) (*madara.Content, error) {
	if contentID == "" {
		return nil, madara.Errorf(madara.EINVALID, "content id required")
	}

	html, err := r.get(ctx, r.Context.URL(contentID))
	if err != nil {
		return nil, err
	}

	content, err := r.Parser.Content(r.Context, html, contentID)
	if err != nil {
		return nil, err
	}
	if len(content.Chapters) == 0 {
		chapters, err := r.ajaxChapters(ctx, contentID, html)
		if err != nil {
			return nil, err
		}
		if len(chapters) > 0 {
			content.Chapters = chapters
		}
	}
	return content, nil
}

// Chapters returns the chapter list of a title.
func (r *Runner) Chapters(ctx context.Context, contentID string) ([]madara.Chapter, error) {
	if contentID == "" {
		return nil, madara.Errorf(madara.EINVALID, "content id required")
	}

	html, err := r.get(ctx, r.Context.URL(contentID))
	if err != nil {
		return nil, err
	}

	chapters, err := r.Parser.Chapters(r.Context, html, contentID)
	if err != nil {
		return nil, err
	}
	if len(chapters) > 0 {
		return chapters, nil
	}
	return r.ajaxChapters(ctx, contentID, html)
}

// ChapterData returns the pages of a chapter, requesting the reader's
// list style so that every page is in one document.
func (r *Runner) ChapterData(ctx context.Context, contentID, chapterID string) (*madara.ChapterData, error) {
	if contentID == "" || chapterID == "" {
		return nil, madara.Errorf(madara.EINVALID, "content id and chapter id required")
	}

	html, err := r.get(ctx, r.Context.URL(contentID, chapterID)+"?style=list")
	if err != nil {
		return nil, err
	}
	return r.Parser.ChapterData(r.Context, html)
}

// Genres returns the site taxonomy from the advanced search form.
func (r *Runner) Genres(ctx context.Context) ([]madara.Tag, error) {
	html, err := r.get(ctx, r.Context.BaseURL+"/?s=&post_type=wp-manga")
	if err != nil {
		return nil, err
	}
	return r.Parser.Genres(r.Context, html)
}

// ajaxChapters loads the chapter list from the AJAX endpoint, falling
// back to the legacy admin-ajax action when the holder id is known.
// Returns no chapters when the fetcher cannot POST.
func (r *Runner) ajaxChapters(ctx context.Context, contentID, pageHTML string) ([]madara.Chapter, error) {
	poster, ok := r.Fetcher.(madara.FormPoster)
	if !ok {
		return nil, nil
	}

	html, err := r.post(ctx, poster, r.Context.URL(contentID, "ajax", "chapters"), url.Values{})
	if err == nil {
		chapters, err := r.Parser.Chapters(r.Context, html, contentID)
		if err != nil || len(chapters) > 0 {
			return chapters, err
		}
	} else if madara.ErrorCode(err) != madara.ENOTFOUND {
		return nil, err
	}

	holderID := r.holderID(pageHTML)
	if holderID == "" {
		return nil, nil
	}
	html, err = r.post(ctx, poster, r.ajaxURL(), url.Values{
		"action": {"manga_get_chapters"},
		"manga":  {holderID},
	})
	if err != nil {
		return nil, err
	}
	return r.Parser.Chapters(r.Context, html, contentID)
}

// holderID reads the post id of the chapter holder on a title page.
func (r *Runner) holderID(html string) string {
	if r.Loader == nil {
		return ""
	}
	doc, err := r.Loader.Load(html)
	if err != nil {
		return ""
	}
	id, _ := doc.Find("#manga-chapters-holder").Attr("data-id")
	return id
}

func (r *Runner) ajaxURL() string {
	return r.Context.BaseURL + "/wp-admin/admin-ajax.php"
}

func (r *Runner) searchURL(query string, page int) string {
	q := url.Values{"s": {query}, "post_type": {"wp-manga"}}
	if page <= 1 {
		return r.Context.BaseURL + "/?" + q.Encode()
	}
	return fmt.Sprintf("%s/page/%d/?%s", r.Context.BaseURL, page, q.Encode())
}

// loadMoreForm builds the madara_load_more request for a listing page.
// The endpoint pages from 0.
func (r *Runner) loadMoreForm(req madara.DirectoryRequest) url.Values {
	size := r.PageSize
	if size <= 0 {
		size = 20
	}
	form := url.Values{
		"action":               {"madara_load_more"},
		"page":                 {strconv.Itoa(req.Page - 1)},
		"template":             {"madara-core/content/content-archive"},
		"vars[paged]":          {"1"},
		"vars[orderby]":        {"meta_value_num"},
		"vars[meta_key]":       {listMetaKeys[req.List]},
		"vars[order]":          {"desc"},
		"vars[post_type]":      {"wp-manga"},
		"vars[post_status]":    {"publish"},
		"vars[posts_per_page]": {strconv.Itoa(size)},
		"vars[sidebar]":        {"right"},
	}
	form.Set("vars[manga_archives_item_layout]", "big_thumbnail")
	return form
}

func (r *Runner) get(ctx context.Context, u string) (string, error) {
	return WithRetry(ctx, u, func(ctx context.Context) (string, error) {
		return r.Fetcher.Fetch(ctx, u)
	}, r.Log, r.delays())
}

func (r *Runner) post(ctx context.Context, poster madara.FormPoster, u string, form url.Values) (string, error) {
	return WithRetry(ctx, "POST "+u, func(ctx context.Context) (string, error) {
		return poster.Post(ctx, u, form)
	}, r.Log, r.delays())
}

func (r *Runner) delays() []time.Duration {
	if r.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return r.RetryDelays
}
