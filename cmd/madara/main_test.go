package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/madara"
	main "github.com/fwojciec/madara/cmd/madara"
	"github.com/fwojciec/madara/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const titlePage = `<!DOCTYPE html>
<html><body class="wp-manga-template">
<div class="post-title"><h1>Solo Leveling</h1></div>
<div class="summary_image"><img src="https://mangatx.com/cover.jpg"></div>
<div class="author-content"><a href="https://mangatx.com/manga-author/chugong/">Chugong</a></div>
<div class="post-status"><div class="summary-content">OnGoing</div></div>
<div class="genres-content"><a href="https://mangatx.com/manga-genre/action/">Action</a></div>
<ul>
<li class="wp-manga-chapter"><a href="https://mangatx.com/manga/solo-leveling/chapter-2/">Chapter 2</a><span class="chapter-release-date"><i>March 3, 2023</i></span></li>
<li class="wp-manga-chapter"><a href="https://mangatx.com/manga/solo-leveling/chapter-1/">Chapter 1</a><span class="chapter-release-date"><i>March 1, 2023</i></span></li>
</ul>
</body></html>`

// pageFetcher serves titlePage for the title URL and fails everything else.
func pageFetcher(t *testing.T) *mock.Fetcher {
	t.Helper()
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://mangatx.com/manga/solo-leveling/" {
				return titlePage, nil
			}
			return "", madara.Errorf(madara.ENOTFOUND, "not found: %s", url)
		},
		CloseFn: func() error { return nil },
	}
}

func newMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "library.db")
	return m
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	t.Run("help lists commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"--help"}, stdout, stderr)
		require.NoError(t, err)

		helpOutput := stdout.String()
		for _, cmd := range []string{"sites", "probe", "popular", "latest", "search", "info",
			"chapters", "pages", "genres", "parse", "sync", "library", "export"} {
			assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
		}
		assert.Contains(t, helpOutput, "Usage:")
		assert.Contains(t, helpOutput, "Flags:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		err := newMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})
}

func TestMain_Run_Sites(t *testing.T) {
	t.Parallel()

	t.Run("lists builtin profiles", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"sites"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "mangatx")
		assert.Contains(t, stdout.String(), "https://mangatx.com")
	})

	t.Run("includes profiles from sites file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sites.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
sites:
  - id: toonily
    name: Toonily
    base_url: https://toonily.com
    content_path: webtoon
    template: madara
`), 0644))
		stdout := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"--sites-file", path, "sites"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "mangatx")
		assert.Contains(t, stdout.String(), "toonily  Toonily  https://toonily.com")
	})

	t.Run("rejects invalid sites file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sites.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sites: []\n"), 0644))

		err := newMain(t).Run(context.Background(), []string{"--sites-file", path, "sites"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestMain_Run_UnknownSite(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), []string{"--site", "nope", "genres"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, madara.ENOTFOUND, madara.ErrorCode(err))
	assert.Contains(t, stderr.String(), "madara sites")
}

func TestMain_Run_Parse(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "title.html")
	require.NoError(t, os.WriteFile(path, []byte(titlePage), 0644))
	stdout := &bytes.Buffer{}

	err := newMain(t).Run(context.Background(), []string{"parse", "chapters", path, "--id", "solo-leveling"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	var chapters []madara.Chapter
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &chapters))
	require.Len(t, chapters, 2)
	assert.Equal(t, "chapter-2", chapters[0].ChapterID)
	assert.InDelta(t, 2.0, chapters[0].Number, 0.0001)
	assert.Equal(t, 1, chapters[1].Index)
}

func TestMain_Run_Info(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	m.Fetcher = pageFetcher(t)
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"info", "solo-leveling"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "# Solo Leveling")
	assert.Contains(t, output, "Creators: Chugong")
	assert.Contains(t, output, "Status: ongoing")
	assert.Contains(t, output, "(chapter-1)")
}

func TestMain_Run_SyncLibraryExport(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	m.Fetcher = pageFetcher(t)
	ctx := context.Background()

	// First sync saves the title.
	stdout := &bytes.Buffer{}
	err := m.Run(ctx, []string{"sync", "solo-leveling"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Solo Leveling (updated)")
	assert.Contains(t, stdout.String(), "1 updated, 0 unchanged, 0 failed")

	// Second sync finds no new chapters.
	stdout.Reset()
	err = m.Run(ctx, []string{"sync", "--saved"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "0 updated, 1 unchanged, 0 failed")

	// A failing title is reported.
	stdout.Reset()
	stderr := &bytes.Buffer{}
	err = m.Run(ctx, []string{"sync", "missing"}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "missing: error:")

	// The library lists it.
	stdout.Reset()
	err = m.Run(ctx, []string{"library"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "mangatx/solo-leveling")
	assert.Contains(t, stdout.String(), "Solo Leveling")

	// Export writes it out.
	dir := t.TempDir()
	stdout.Reset()
	err = m.Run(ctx, []string{"export", dir, "out"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Exported 1 titles")

	md, err := os.ReadFile(filepath.Join(dir, "out", "mangatx", "solo-leveling.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "---\n"))
	assert.Contains(t, string(md), "# Solo Leveling")
}
