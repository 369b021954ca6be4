package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/madara"
	main "github.com/fwojciec/madara/cmd/madara"
	"github.com/fwojciec/madara/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func libraryDeps(lib madara.LibraryService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Library: lib,
	}, stdout, stderr
}

func TestLibraryListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists entries", func(t *testing.T) {
		t.Parallel()

		lib := &mock.LibraryService{
			FindEntriesFn: func(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
				return []*madara.Entry{
					{ID: "e1", SiteID: "mangatx", ContentID: "solo", Title: "Solo", Status: madara.StatusOngoing, ChapterCount: 12},
				}, nil
			},
		}
		deps, stdout, _ := libraryDeps(lib)

		require.NoError(t, (&main.LibraryListCmd{}).Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "e1")
		assert.Contains(t, output, "mangatx/solo")
		assert.Contains(t, output, "ongoing")
		assert.Contains(t, output, "12")
		assert.Contains(t, output, "Solo")
	})

	t.Run("builds filter from flags", func(t *testing.T) {
		t.Parallel()

		var got madara.EntryFilter
		lib := &mock.LibraryService{
			FindEntriesFn: func(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
				got = filter
				return nil, nil
			},
		}
		deps, stdout, _ := libraryDeps(lib)

		err := (&main.LibraryListCmd{From: "mangatx", Status: "completed", NSFW: "no", Limit: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.SiteID)
		assert.Equal(t, "mangatx", *got.SiteID)
		require.NotNil(t, got.Status)
		assert.Equal(t, madara.StatusCompleted, *got.Status)
		require.NotNil(t, got.NSFW)
		assert.False(t, *got.NSFW)
		assert.Equal(t, 5, got.Limit)
		assert.Contains(t, stdout.String(), "Library is empty")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := libraryDeps(&mock.LibraryService{})

		err := (&main.LibraryListCmd{Status: "paused"}).Run(deps)
		assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
	})

	t.Run("rejects unknown nsfw value", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := libraryDeps(&mock.LibraryService{})

		err := (&main.LibraryListCmd{NSFW: "maybe"}).Run(deps)
		assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
	})
}

func TestLibraryDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := libraryDeps(&mock.LibraryService{})

		err := (&main.LibraryDeleteCmd{ID: "e1"}).Run(deps)

		assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes entry", func(t *testing.T) {
		t.Parallel()

		var deleted string
		lib := &mock.LibraryService{
			FindEntryByIDFn: func(ctx context.Context, id string) (*madara.Entry, error) {
				return &madara.Entry{ID: id, Title: "Solo"}, nil
			},
			DeleteEntryFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		deps, stdout, _ := libraryDeps(lib)

		require.NoError(t, (&main.LibraryDeleteCmd{ID: "e1", Force: true}).Run(deps))
		assert.Equal(t, "e1", deleted)
		assert.Contains(t, stdout.String(), `Deleted "Solo"`)
	})

	t.Run("reports missing entry", func(t *testing.T) {
		t.Parallel()

		lib := &mock.LibraryService{
			FindEntryByIDFn: func(ctx context.Context, id string) (*madara.Entry, error) {
				return nil, madara.Errorf(madara.ENOTFOUND, "entry not found")
			},
		}
		deps, _, stderr := libraryDeps(lib)

		err := (&main.LibraryDeleteCmd{ID: "e1", Force: true}).Run(deps)

		assert.Equal(t, madara.ENOTFOUND, madara.ErrorCode(err))
		assert.Contains(t, stderr.String(), "madara library")
	})
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	entries := []*madara.Entry{
		{SiteID: "mangatx", ContentID: "a", Content: &madara.Content{Title: "A"}},
		{SiteID: "mangatx", ContentID: "b", Content: &madara.Content{Title: "B"}},
	}

	t.Run("saves every entry and commits", func(t *testing.T) {
		t.Parallel()

		var saved []string
		committed := false
		store := &mock.EntryStore{
			SaveFn: func(ctx context.Context, e *madara.Entry) error {
				saved = append(saved, e.ContentID)
				return nil
			},
			CommitFn: func() error {
				committed = true
				return nil
			},
		}
		lib := &mock.LibraryService{
			FindEntriesFn: func(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
				return entries, nil
			},
		}
		deps, stdout, _ := libraryDeps(lib)
		deps.NewStore = func(dir, name string) madara.EntryStore {
			assert.Equal(t, "/tmp/exports", dir)
			assert.Equal(t, "manga", name)
			return store
		}

		require.NoError(t, (&main.ExportCmd{Dir: "/tmp/exports", Name: "manga"}).Run(deps))

		assert.Equal(t, []string{"a", "b"}, saved)
		assert.True(t, committed)
		assert.Contains(t, stdout.String(), "Exported 2 titles")
	})

	t.Run("aborts on save failure", func(t *testing.T) {
		t.Parallel()

		aborted := false
		store := &mock.EntryStore{
			SaveFn: func(ctx context.Context, e *madara.Entry) error {
				return errors.New("disk full")
			},
			AbortFn: func() error {
				aborted = true
				return nil
			},
		}
		lib := &mock.LibraryService{
			FindEntriesFn: func(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
				return entries, nil
			},
		}
		deps, _, stderr := libraryDeps(lib)
		deps.NewStore = func(dir, name string) madara.EntryStore { return store }

		err := (&main.ExportCmd{Dir: t.TempDir(), Name: "manga"}).Run(deps)

		require.Error(t, err)
		assert.True(t, aborted)
		assert.Contains(t, stderr.String(), "disk full")
	})
}
