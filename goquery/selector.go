package goquery

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/madara"
)

// CheckSelectors compiles every non-empty selector of site and reports
// the first one with invalid syntax. goquery treats an invalid selector
// as matching nothing, so a typo in a site profile would otherwise show
// up only as missing data.
func CheckSelectors(site madara.Context) error {
	for _, f := range []struct{ name, sel string }{
		{"title", site.TitleSelector},
		{"author", site.AuthorSelector},
		{"artist", site.ArtistSelector},
		{"summary", site.SummarySelector},
		{"thumbnail", site.ThumbnailSelector},
		{"status", site.StatusSelector},
		{"genre", site.GenreSelector},
		{"tag", site.TagSelector},
		{"alternative titles", site.AlternativeTitlesSelector},
		{"chapter", site.ChapterSelector},
		{"chapter date", site.ChapterDateSelector},
		{"image", site.ImageSelector},
		{"search", site.SearchSelector},
		{"listing", site.ListingSelector},
		{"listing title", site.ListingTitleSelector},
		{"cover", site.CoverSelector},
		{"search title", site.SearchTitleSelector},
		{"genre form", site.GenreFormSelector},
		{"navigation", site.NavigationSelector},
	} {
		if strings.TrimSpace(f.sel) == "" {
			continue
		}
		if _, err := cascadia.ParseGroup(f.sel); err != nil {
			return madara.Errorf(madara.EINVALID, "site %s: invalid %s selector %q: %v", site.ID, f.name, f.sel, err)
		}
	}
	return nil
}
