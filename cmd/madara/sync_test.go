package main_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/madara"
	main "github.com/fwojciec/madara/cmd/madara"
	"github.com/fwojciec/madara/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCmd_Run(t *testing.T) {
	t.Parallel()

	site := madara.Context{ID: "mangatx"}

	t.Run("syncs saved titles of the site", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var fetched []string
		src := &mock.Source{
			SiteFn: func() madara.Context { return site },
			ContentFn: func(ctx context.Context, contentID string) (*madara.Content, error) {
				mu.Lock()
				fetched = append(fetched, contentID)
				mu.Unlock()
				return &madara.Content{Title: contentID}, nil
			},
		}
		lib := &mock.LibraryService{
			FindEntriesFn: func(ctx context.Context, filter madara.EntryFilter) ([]*madara.Entry, error) {
				require.NotNil(t, filter.SiteID)
				assert.Equal(t, "mangatx", *filter.SiteID)
				return []*madara.Entry{{ContentID: "a"}, {ContentID: "b"}}, nil
			},
			SaveEntryFn: func(ctx context.Context, e *madara.Entry) (bool, error) {
				return e.ContentID == "a", nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{},
			Site: site, Source: src, Library: lib,
		}

		err := (&main.SyncCmd{Saved: true, Concurrency: 2}).Run(deps)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, fetched)
		assert.Contains(t, stdout.String(), "[1/2] a (updated)")
		assert.Contains(t, stdout.String(), "[2/2] b\n")
		assert.Contains(t, stdout.String(), "1 updated, 1 unchanged, 0 failed")
	})

	t.Run("requires ids", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

		err := (&main.SyncCmd{}).Run(deps)
		assert.Equal(t, madara.EINVALID, madara.ErrorCode(err))
	})

	t.Run("returns error when titles fail", func(t *testing.T) {
		t.Parallel()

		src := &mock.Source{
			SiteFn: func() madara.Context { return site },
			ContentFn: func(ctx context.Context, contentID string) (*madara.Content, error) {
				return nil, errors.New("timeout")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr,
			Site: site, Source: src, Library: &mock.LibraryService{},
		}

		err := (&main.SyncCmd{IDs: []string{"x"}, Concurrency: 1}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 titles failed")
		assert.Contains(t, stderr.String(), "[1/1] x: error: timeout")
	})
}
