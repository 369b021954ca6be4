package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/madara"
	"github.com/fwojciec/madara/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(contentID, title string) *madara.Entry {
	return madara.NewEntry("mangatx", contentID, &madara.Content{
		Title:   title,
		Status:  madara.StatusOngoing,
		WebURL:  "https://mangatx.com/manga/" + contentID + "/",
		Summary: "A story.",
		Chapters: []madara.Chapter{
			{Index: 0, ChapterID: "chapter-1", Number: 1, Title: "Chapter 1"},
		},
	})
}

// Story: Atomic Export
// The store uses a temp directory for atomic updates

func TestFileStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewFileStore(base, "export")

	// When I save an entry
	err := store.Save(context.Background(), sampleEntry("solo-leveling", "Solo Leveling"))

	// Then no error occurs
	require.NoError(t, err)

	// And both files exist in the temp directory
	for _, name := range []string{"solo-leveling.json", "solo-leveling.md"} {
		_, err = os.Stat(filepath.Join(base, "export.tmp", "mangatx", name))
		require.NoError(t, err, "%s should exist in temp directory", name)
	}

	// And final directory does not exist yet
	_, err = os.Stat(filepath.Join(base, "export"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestFileStore_CommitMovesFromTempToFinal(t *testing.T) {
	t.Parallel()

	// Given a store with a previous export and a saved entry
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "export"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "export", "stale.txt"), []byte("old"), 0644))

	store := fs.NewFileStore(base, "export")
	require.NoError(t, store.Save(context.Background(), sampleEntry("a", "A")))

	// When I commit
	require.NoError(t, store.Commit())

	// Then the final directory holds the new export only
	_, err := os.Stat(filepath.Join(base, "export", "mangatx", "a.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "export", "stale.txt"))
	assert.True(t, os.IsNotExist(err), "previous export should be replaced")

	// And temp directory is gone
	_, err = os.Stat(filepath.Join(base, "export.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after commit")
}

func TestFileStore_CommitWithoutEntries(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "export")

	require.NoError(t, store.Commit())

	info, err := os.Stat(filepath.Join(base, "export"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	// Given a store with a saved entry
	base := t.TempDir()
	store := fs.NewFileStore(base, "export")
	require.NoError(t, store.Save(context.Background(), sampleEntry("a", "A")))

	// When I abort
	require.NoError(t, store.Abort())

	// Then neither directory exists
	_, err := os.Stat(filepath.Join(base, "export.tmp"))
	assert.True(t, os.IsNotExist(err), "temp directory should be removed after abort")
	_, err = os.Stat(filepath.Join(base, "export"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestFileStore_WritesJSONAndMarkdown(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "export")
	require.NoError(t, store.Save(context.Background(), sampleEntry("tower", "Tower")))
	require.NoError(t, store.Commit())

	data, err := os.ReadFile(filepath.Join(base, "export", "mangatx", "tower.json"))
	require.NoError(t, err)
	var decoded madara.Entry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "tower", decoded.ContentID)
	require.NotNil(t, decoded.Content)
	require.Len(t, decoded.Content.Chapters, 1)
	assert.Equal(t, "chapter-1", decoded.Content.Chapters[0].ChapterID)

	md, err := os.ReadFile(filepath.Join(base, "export", "mangatx", "tower.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "site: mangatx\n")
	assert.Contains(t, string(md), "source: https://mangatx.com/manga/tower/\n")
	assert.Contains(t, string(md), `title: "Tower"`)
	assert.Contains(t, string(md), "chapters: 1\n")
	assert.Contains(t, string(md), "# Tower")
	assert.Contains(t, string(md), "(chapter-1)")
}

func TestFileStore_RejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	t.Run("missing content", func(t *testing.T) {
		t.Parallel()

		store := fs.NewFileStore(t.TempDir(), "export")
		err := store.Save(context.Background(), &madara.Entry{SiteID: "s", ContentID: "c"})
		assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()

		store := fs.NewFileStore(t.TempDir(), "export")
		err := store.Save(context.Background(), sampleEntry("../../etc/passwd", "Malicious"))
		require.Error(t, err, "path traversal should be rejected")
		assert.Contains(t, err.Error(), "path traversal")
	})
}

func TestEntryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		siteID    string
		contentID string
		want      string
		wantErr   bool
	}{
		{name: "simple", siteID: "mangatx", contentID: "solo-leveling", want: filepath.Join("mangatx", "solo-leveling.md")},
		{name: "empty content", siteID: "mangatx", contentID: "", wantErr: true},
		{name: "dot dot", siteID: "..", contentID: "x", wantErr: true},
		{name: "separator", siteID: "mangatx", contentID: "a/b", wantErr: true},
		{name: "backslash", siteID: "mangatx", contentID: `a\b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.EntryPath(tt.siteID, tt.contentID, ".md")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
