package localstore

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	apperrors "github.com/Nico-ST/SvenSwipe/pkg/errors"
)

// DeleteBatch removes all given assets behind exactly one user confirmation.
// Files are moved into the trash directory two-phase: if any move fails, the
// already-moved files are restored and the batch reports failure with nothing
// removed. Index rows are only dropped after every file landed in the trash.
func (s *Store) DeleteBatch(ctx context.Context, assets []domain.Asset) error {
	if len(assets) == 0 {
		return apperrors.ErrEmptyBatch
	}
	if err := s.authorized(ctx); err != nil {
		return err
	}

	confirmed, err := s.Confirmer.ConfirmDeletion(ctx, len(assets))
	if err != nil {
		return apperrors.Wrap(apperrors.Join(apperrors.ErrDeletionFailed, err), "deletion prompt failed")
	}
	if !confirmed {
		return apperrors.Wrap(apperrors.ErrDeletionFailed, "deletion declined by user")
	}

	if err := os.MkdirAll(s.TrashDir, 0o755); err != nil {
		return apperrors.Wrap(apperrors.Join(apperrors.ErrDeletionFailed, err), "failed to prepare trash directory")
	}

	type move struct {
		from, to string
	}
	var moved []move

	rollback := func() {
		for i := len(moved) - 1; i >= 0; i-- {
			if err := os.Rename(moved[i].to, moved[i].from); err != nil {
				s.Logger.Error("Failed to restore asset during rollback", "path", moved[i].from, "error", err)
			}
		}
	}

	stamp := time.Now().UnixNano()
	for n, asset := range assets {
		if !asset.Local() {
			// Non-local assets have no file to move; their index row removal
			// below is the whole deletion.
			continue
		}
		from := filepath.Join(s.Root, asset.RelPath)
		to := filepath.Join(s.TrashDir, fmt.Sprintf("%d-%d-%s", stamp, n, filepath.Base(asset.RelPath)))
		if err := os.Rename(from, to); err != nil {
			rollback()
			return apperrors.Wrap(apperrors.Join(apperrors.ErrDeletionFailed, err),
				fmt.Sprintf("failed to trash %s", asset.RelPath))
		}
		moved = append(moved, move{from: from, to: to})
	}

	ids := make([]string, 0, len(assets))
	for _, asset := range assets {
		ids = append(ids, asset.ID)
	}
	if err := s.index.deleteAssets(ctx, ids); err != nil {
		rollback()
		return apperrors.Wrap(apperrors.Join(apperrors.ErrDeletionFailed, err), "failed to update index")
	}

	for _, asset := range assets {
		s.cache.dropAsset(asset.ID)
	}

	s.Logger.Info("Deleted asset batch", "count", len(assets))
	return nil
}

// PurgeTrash permanently removes trashed files older than the given age and
// returns how many were purged.
func (s *Store) PurgeTrash(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	purged := 0

	err := filepath.WalkDir(s.TrashDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				s.Logger.Warn("Failed to purge trashed file", "path", path, "error", err)
				return nil
			}
			purged++
		}
		return nil
	})
	if err != nil {
		return purged, fmt.Errorf("failed to walk trash directory: %w", err)
	}

	return purged, nil
}

// dropAsset evicts every cached size of one asset.
func (c *previewCache) dropAsset(assetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Front(); el != nil; {
		next := el.Next()
		entry := el.Value.(*cacheEntry)
		if len(entry.key) > len(assetID) && entry.key[:len(assetID)] == assetID && entry.key[len(assetID)] == '@' {
			c.order.Remove(el)
			delete(c.entries, entry.key)
		}
		el = next
	}
}
