package localstore

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/confirm"
	"github.com/Nico-ST/SvenSwipe/internal/domain"
	apperrors "github.com/Nico-ST/SvenSwipe/pkg/errors"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func newTestStore(t *testing.T, confirmer confirm.Confirmer) *Store {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "photos")
	require.NoError(t, os.MkdirAll(root, 0o755))

	s, err := Open(
		root,
		filepath.Join(dir, "trash"),
		filepath.Join(dir, "auth-state"),
		filepath.Join(dir, "index.db"),
		8, 100,
		logger.New(logger.Opts{}),
		confirmer,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func grant(t *testing.T, s *Store) {
	t.Helper()
	status, err := s.RequestAuthorization(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.AuthAuthorized, status)
}

func TestAuthorizationFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("not determined until requested", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: true})
		status, err := s.CheckAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.AuthNotDetermined, status)
	})

	t.Run("grant persists", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: true})
		grant(t, s)

		status, err := s.CheckAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.AuthAuthorized, status)
	})

	t.Run("denied blocks reads", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: false})
		status, err := s.RequestAuthorization(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.AuthDenied, status)

		_, err = s.FetchCollection(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		_, err = s.ListAlbums(ctx)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestReindexAndFetchCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, confirm.Static{Grant: true, Delete: true})
	grant(t, s)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	writePNG(t, filepath.Join(s.Root, "oldest.png"), 8, 8, base)
	writePNG(t, filepath.Join(s.Root, "vacation", "middle.png"), 8, 8, base.Add(time.Minute))
	writePNG(t, filepath.Join(s.Root, "vacation", "newest.png"), 8, 8, base.Add(2*time.Minute))
	writePNG(t, filepath.Join(s.Root, "notes.txt.png"), 8, 8, base.Add(3*time.Minute))
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "notes.txt"), []byte("x"), 0o644))

	require.NoError(t, s.Reindex(ctx))

	collection, err := s.FetchCollection(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 4, collection.Len())

	// Newest-first by creation time, non-image files excluded.
	assert.Equal(t, "notes.txt.png", collection.Assets[0].ID)
	assert.Equal(t, "vacation/newest.png", collection.Assets[1].ID)
	assert.Equal(t, "vacation/middle.png", collection.Assets[2].ID)
	assert.Equal(t, "oldest.png", collection.Assets[3].ID)
}

func TestListAlbums(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, confirm.Static{Grant: true})
	grant(t, s)

	now := time.Now()
	writePNG(t, filepath.Join(s.Root, "loose.png"), 8, 8, now)
	writePNG(t, filepath.Join(s.Root, "zoo", "a.png"), 8, 8, now)
	writePNG(t, filepath.Join(s.Root, "beach", "b.png"), 8, 8, now)
	writePNG(t, filepath.Join(s.Root, "beach", "c.png"), 8, 8, now)

	require.NoError(t, s.Reindex(ctx))

	albums, err := s.ListAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 2)

	// Stable title order; loose root files belong to no album.
	assert.Equal(t, "beach", albums[0].Title)
	assert.Equal(t, 2, albums[0].PhotoCount)
	assert.Equal(t, "zoo", albums[1].Title)
	assert.Equal(t, 1, albums[1].PhotoCount)

	scoped, err := s.FetchCollection(ctx, &albums[0])
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.Len())
}

func TestRequestPreviewResizesAndCaches(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, confirm.Static{Grant: true})
	grant(t, s)

	writePNG(t, filepath.Join(s.Root, "big.png"), 400, 200, time.Now())
	require.NoError(t, s.Reindex(ctx))

	collection, err := s.FetchCollection(ctx, nil)
	require.NoError(t, err)
	asset := collection.Assets[0]

	img, err := s.RequestPreview(ctx, asset, image.Pt(100, 100))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 100, bounds.Dx())
	assert.Equal(t, 50, bounds.Dy())

	// Second request is a cache hit even after the file disappears.
	require.NoError(t, os.Remove(filepath.Join(s.Root, "big.png")))
	cached, err := s.RequestPreview(ctx, asset, image.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, img, cached)
}

func TestRequestPreviewLoadFailure(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, confirm.Static{Grant: true})
	grant(t, s)

	_, err := s.RequestPreview(ctx, domain.Asset{ID: "ghost.png", RelPath: "ghost.png"}, image.Pt(64, 64))
	assert.ErrorIs(t, err, apperrors.ErrImageLoad)
}

func TestDeleteBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch is rejected", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: true, Delete: true})
		grant(t, s)
		assert.ErrorIs(t, s.DeleteBatch(ctx, nil), apperrors.ErrEmptyBatch)
	})

	t.Run("declined confirmation removes nothing", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: true, Delete: false})
		grant(t, s)

		writePNG(t, filepath.Join(s.Root, "keep.png"), 8, 8, time.Now())
		require.NoError(t, s.Reindex(ctx))
		collection, err := s.FetchCollection(ctx, nil)
		require.NoError(t, err)

		err = s.DeleteBatch(ctx, collection.Assets)
		assert.ErrorIs(t, err, apperrors.ErrDeletionFailed)

		after, err := s.FetchCollection(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, after.Len())
		assert.FileExists(t, filepath.Join(s.Root, "keep.png"))
	})

	t.Run("successful batch trashes files and shrinks collection", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: true, Delete: true})
		grant(t, s)

		base := time.Now().Add(-time.Minute)
		writePNG(t, filepath.Join(s.Root, "a.png"), 8, 8, base)
		writePNG(t, filepath.Join(s.Root, "b.png"), 8, 8, base.Add(time.Second))
		writePNG(t, filepath.Join(s.Root, "c.png"), 8, 8, base.Add(2*time.Second))
		require.NoError(t, s.Reindex(ctx))

		collection, err := s.FetchCollection(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, 3, collection.Len())

		require.NoError(t, s.DeleteBatch(ctx, collection.Assets[:2]))

		after, err := s.FetchCollection(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, after.Len())
		assert.NoFileExists(t, filepath.Join(s.Root, "c.png"))
		assert.FileExists(t, filepath.Join(s.Root, "a.png"))

		trashed, err := os.ReadDir(s.TrashDir)
		require.NoError(t, err)
		assert.Len(t, trashed, 2)
	})

	t.Run("mid-batch failure rolls back", func(t *testing.T) {
		s := newTestStore(t, confirm.Static{Grant: true, Delete: true})
		grant(t, s)

		writePNG(t, filepath.Join(s.Root, "first.png"), 8, 8, time.Now())
		writePNG(t, filepath.Join(s.Root, "second.png"), 8, 8, time.Now())
		require.NoError(t, s.Reindex(ctx))
		collection, err := s.FetchCollection(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, 2, collection.Len())

		// Pull one file out from under the batch so its rename fails.
		require.NoError(t, os.Remove(filepath.Join(s.Root, collection.Assets[1].RelPath)))

		err = s.DeleteBatch(ctx, collection.Assets)
		assert.ErrorIs(t, err, apperrors.ErrDeletionFailed)

		// The first asset was moved and must have been restored.
		assert.FileExists(t, filepath.Join(s.Root, collection.Assets[0].RelPath))

		after, err := s.FetchCollection(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, after.Len())
	})
}

func TestPurgeTrash(t *testing.T) {
	s := newTestStore(t, confirm.Static{Grant: true})

	old := filepath.Join(s.TrashDir, "old.png")
	fresh := filepath.Join(s.TrashDir, "fresh.png")
	writePNG(t, old, 8, 8, time.Now().Add(-10*24*time.Hour))
	writePNG(t, fresh, 8, 8, time.Now())

	purged, err := s.PurgeTrash(5 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
}

func TestPreheatHintsAreBestEffort(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, confirm.Static{Grant: true})
	grant(t, s)

	writePNG(t, filepath.Join(s.Root, "warm.png"), 64, 64, time.Now())
	require.NoError(t, s.Reindex(ctx))
	collection, err := s.FetchCollection(ctx, nil)
	require.NoError(t, err)

	size := image.Pt(32, 32)

	// Empty sets are no-ops; missing assets never surface an error.
	s.BeginPreheat(nil, size)
	s.EndPreheat(nil, size)
	s.BeginPreheat([]domain.Asset{{ID: "ghost.png", RelPath: "ghost.png"}}, size)

	s.BeginPreheat(collection.Assets, size)
	require.Eventually(t, func() bool {
		_, ok := s.cache.get(cacheKey("warm.png", size))
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	s.EndPreheat(collection.Assets, size)
	_, ok := s.cache.get(cacheKey("warm.png", size))
	assert.False(t, ok)
}
