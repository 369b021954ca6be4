// Package yaml loads site profiles from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/madara"
	"github.com/fwojciec/madara/goquery"
	"gopkg.in/yaml.v3"
)

// TemplateMadara starts a profile from the stock Madara theme selectors.
const TemplateMadara = "madara"

// File is the top-level document of a profile file.
type File struct {
	Sites []Profile `yaml:"sites"`
}

// Profile describes one site. Empty fields keep the template's value,
// or the engine default when no template is named.
type Profile struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	ContentPath string `yaml:"content_path"`
	Template    string `yaml:"template"`

	Selectors Selectors `yaml:"selectors"`

	UpdatingSentinels []string     `yaml:"updating_sentinels"`
	AdultTags         []string     `yaml:"adult_tags"`
	StatusTerms       []StatusTerm `yaml:"status_terms"`
	DateFormat        string       `yaml:"date_format"`
	ReadingMode       string       `yaml:"reading_mode"`
	Language          string       `yaml:"language"`
}

// Selectors holds the CSS selectors of a profile.
type Selectors struct {
	Title             string `yaml:"title"`
	Author            string `yaml:"author"`
	Artist            string `yaml:"artist"`
	Summary           string `yaml:"summary"`
	Thumbnail         string `yaml:"thumbnail"`
	Status            string `yaml:"status"`
	Genre             string `yaml:"genre"`
	Tag               string `yaml:"tag"`
	AlternativeTitles string `yaml:"alternative_titles"`
	Chapter           string `yaml:"chapter"`
	ChapterDate       string `yaml:"chapter_date"`
	Image             string `yaml:"image"`
	Search            string `yaml:"search"`
	Listing           string `yaml:"listing"`
	ListingTitle      string `yaml:"listing_title"`
	Cover             string `yaml:"cover"`
	SearchTitle       string `yaml:"search_title"`
	GenreForm         string `yaml:"genre_form"`
	Navigation        string `yaml:"navigation"`
}

// StatusTerm maps a keyword to a status.
type StatusTerm struct {
	Keyword string `yaml:"keyword"`
	Status  string `yaml:"status"`
}

// LoadFile reads and decodes the profile file at path.
func LoadFile(path string) ([]madara.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open site profiles: %w", err)
	}
	defer f.Close()

	sites, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sites, nil
}

// Decode reads a profile document and returns one validated Context per
// site. Unknown keys, duplicate ids and invalid selectors are errors.
func Decode(r io.Reader) ([]madara.Context, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, madara.Errorf(madara.EINVALID, "no sites defined")
		}
		return nil, madara.Errorf(madara.EINVALID, "invalid site profiles: %v", err)
	}
	if len(file.Sites) == 0 {
		return nil, madara.Errorf(madara.EINVALID, "no sites defined")
	}

	seen := make(map[string]bool, len(file.Sites))
	sites := make([]madara.Context, 0, len(file.Sites))
	for i, p := range file.Sites {
		site, err := p.Context()
		if err != nil {
			return nil, madara.Errorf(madara.ErrorCode(err), "site %d (%s): %s", i, p.ID, madara.ErrorMessage(err))
		}
		if seen[site.ID] {
			return nil, madara.Errorf(madara.EINVALID, "duplicate site id %q", site.ID)
		}
		seen[site.ID] = true
		sites = append(sites, site)
	}
	return sites, nil
}

// Context converts the profile into a validated madara.Context.
func (p Profile) Context() (madara.Context, error) {
	var base madara.Context
	switch p.Template {
	case "":
	case TemplateMadara:
		var err error
		base, err = madara.DefaultContext(p.ID, p.Name, p.BaseURL)
		if err != nil {
			return madara.Context{}, err
		}
	default:
		return madara.Context{}, madara.Errorf(madara.EINVALID, "unknown template %q", p.Template)
	}

	base.ID = override(base.ID, p.ID)
	base.Name = override(base.Name, p.Name)
	base.BaseURL = override(base.BaseURL, p.BaseURL)
	base.ContentPath = override(base.ContentPath, p.ContentPath)

	s := p.Selectors
	base.TitleSelector = override(base.TitleSelector, s.Title)
	base.AuthorSelector = override(base.AuthorSelector, s.Author)
	base.ArtistSelector = override(base.ArtistSelector, s.Artist)
	base.SummarySelector = override(base.SummarySelector, s.Summary)
	base.ThumbnailSelector = override(base.ThumbnailSelector, s.Thumbnail)
	base.StatusSelector = override(base.StatusSelector, s.Status)
	base.GenreSelector = override(base.GenreSelector, s.Genre)
	base.TagSelector = override(base.TagSelector, s.Tag)
	base.AlternativeTitlesSelector = override(base.AlternativeTitlesSelector, s.AlternativeTitles)
	base.ChapterSelector = override(base.ChapterSelector, s.Chapter)
	base.ChapterDateSelector = override(base.ChapterDateSelector, s.ChapterDate)
	base.ImageSelector = override(base.ImageSelector, s.Image)
	base.SearchSelector = override(base.SearchSelector, s.Search)
	base.ListingSelector = override(base.ListingSelector, s.Listing)
	base.ListingTitleSelector = override(base.ListingTitleSelector, s.ListingTitle)
	base.CoverSelector = override(base.CoverSelector, s.Cover)
	base.SearchTitleSelector = override(base.SearchTitleSelector, s.SearchTitle)
	base.GenreFormSelector = override(base.GenreFormSelector, s.GenreForm)
	base.NavigationSelector = override(base.NavigationSelector, s.Navigation)

	if len(p.UpdatingSentinels) > 0 {
		base.UpdatingSentinels = p.UpdatingSentinels
	}
	if len(p.AdultTags) > 0 {
		base.AdultTags = p.AdultTags
	}
	if len(p.StatusTerms) > 0 {
		terms := make([]madara.StatusTerm, 0, len(p.StatusTerms))
		for _, t := range p.StatusTerms {
			status := madara.Status(t.Status)
			switch status {
			case madara.StatusOngoing, madara.StatusCompleted, madara.StatusHiatus,
				madara.StatusCancelled, madara.StatusUnknown:
			default:
				return madara.Context{}, madara.Errorf(madara.EINVALID, "unknown status %q for keyword %q", t.Status, t.Keyword)
			}
			terms = append(terms, madara.StatusTerm{Keyword: t.Keyword, Status: status})
		}
		base.StatusTerms = terms
	}
	base.DateFormat = override(base.DateFormat, p.DateFormat)
	base.DefaultReadingMode = madara.ReadingMode(override(string(base.DefaultReadingMode), p.ReadingMode))
	base.Language = override(base.Language, p.Language)

	site, err := madara.NewContext(base)
	if err != nil {
		return madara.Context{}, err
	}
	if err := goquery.CheckSelectors(site); err != nil {
		return madara.Context{}, err
	}
	return site, nil
}

func override(current, v string) string {
	if v == "" {
		return current
	}
	return v
}
