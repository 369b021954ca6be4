package madara_test

import (
	"testing"

	"github.com/fwojciec/madara"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalContext() madara.Context {
	return madara.Context{
		BaseURL:         "https://example.com/",
		ContentPath:     "/manga/",
		TitleSelector:   "div.post-title h1",
		ChapterSelector: "li.wp-manga-chapter",
		ImageSelector:   "div.page-break img",
		SearchSelector:  "div.c-tabs-item__content",
	}
}

func TestNewContext(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		site, err := madara.NewContext(minimalContext())

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", site.BaseURL)
		assert.Equal(t, "manga", site.ContentPath)
		assert.Equal(t, "example.com", site.ID)
		assert.Equal(t, "example.com", site.Name)
		assert.Equal(t, madara.DefaultListingSelector, site.ListingSelector)
		assert.Equal(t, madara.DefaultListingTitleSelector, site.ListingTitleSelector)
		assert.Equal(t, madara.DefaultSearchTitleSelector, site.SearchTitleSelector)
		assert.Equal(t, madara.DefaultGenreFormSelector, site.GenreFormSelector)
		assert.Equal(t, madara.DefaultNavigationSelector, site.NavigationSelector)
		assert.Equal(t, madara.ReadingModeWebtoon, site.DefaultReadingMode)
		assert.Equal(t, "en_us", site.Language)
		assert.Equal(t, []string{"updating"}, site.UpdatingSentinels)
		assert.Equal(t, madara.DefaultStatusTerms(), site.StatusTerms)
	})

	t.Run("normalizes adult tags", func(t *testing.T) {
		t.Parallel()

		c := minimalContext()
		c.AdultTags = []string{" Ecchi ", "SMUT", ""}

		site, err := madara.NewContext(c)

		require.NoError(t, err)
		assert.Equal(t, []string{"ecchi", "smut"}, site.AdultTags)
	})

	t.Run("does not share slices with the input", func(t *testing.T) {
		t.Parallel()

		c := minimalContext()
		c.StatusTerms = []madara.StatusTerm{{Keyword: "live", Status: madara.StatusOngoing}}

		site, err := madara.NewContext(c)
		require.NoError(t, err)
		c.StatusTerms[0].Keyword = "changed"

		assert.Equal(t, "live", site.StatusTerms[0].Keyword)
	})

	t.Run("lower-cases status keywords", func(t *testing.T) {
		t.Parallel()

		c := minimalContext()
		c.StatusTerms = []madara.StatusTerm{
			{Keyword: " Ongoing ", Status: madara.StatusOngoing},
			{Keyword: "FINISHED", Status: madara.StatusCompleted},
		}

		site, err := madara.NewContext(c)

		require.NoError(t, err)
		assert.Equal(t, "ongoing", site.StatusTerms[0].Keyword)
		assert.Equal(t, madara.StatusOngoing, madara.ParseStatus("Ongoing", site.StatusTerms))
		assert.Equal(t, madara.StatusCompleted, madara.ParseStatus("finished", site.StatusTerms))
		assert.Equal(t, madara.StatusUnknown, madara.ParseStatus("whatever", site.StatusTerms))
	})

	t.Run("rejects empty status keyword", func(t *testing.T) {
		t.Parallel()

		c := minimalContext()
		c.StatusTerms = []madara.StatusTerm{
			{Keyword: "Ongoing", Status: madara.StatusOngoing},
			{Keyword: "  ", Status: madara.StatusCompleted},
		}

		_, err := madara.NewContext(c)

		assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()

		for name, mutate := range map[string]func(*madara.Context){
			"base URL":     func(c *madara.Context) { c.BaseURL = "" },
			"relative URL": func(c *madara.Context) { c.BaseURL = "/example" },
			"ftp URL":      func(c *madara.Context) { c.BaseURL = "ftp://example.com" },
			"content path": func(c *madara.Context) { c.ContentPath = "/" },
			"title":        func(c *madara.Context) { c.TitleSelector = " " },
			"chapter":      func(c *madara.Context) { c.ChapterSelector = "" },
			"image":        func(c *madara.Context) { c.ImageSelector = "" },
			"search":       func(c *madara.Context) { c.SearchSelector = "" },
			"reading mode": func(c *madara.Context) { c.DefaultReadingMode = "sideways" },
		} {
			c := minimalContext()
			mutate(&c)

			_, err := madara.NewContext(c)

			assert.Equal(t, madara.EINVALID, madara.ErrorCode(err), name)
		}
	})
}

func TestDefaultContext(t *testing.T) {
	t.Parallel()

	site, err := madara.DefaultContext("mangatx", "MangaTX", "https://mangatx.com")

	require.NoError(t, err)
	assert.Equal(t, "mangatx", site.ID)
	assert.Equal(t, "MangaTX", site.Name)
	assert.Equal(t, "manga", site.ContentPath)
	assert.NotEmpty(t, site.AuthorSelector)
	assert.Equal(t, "MMMM DD, YYYY", site.DateFormat)
}

func TestContext_URL(t *testing.T) {
	t.Parallel()

	site, err := madara.NewContext(minimalContext())
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/manga/", site.URL())
	assert.Equal(t, "https://example.com/manga/foo/chapter-1/", site.URL("foo", "chapter-1"))
}
