package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	_ "modernc.org/sqlite"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type index struct {
	db *sql.DB
}

func openIndex(path string) (*index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite index: %w", err)
	}

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS assets (
  id TEXT PRIMARY KEY,
  album_id TEXT NOT NULL DEFAULT '',
  rel_path TEXT NOT NULL,
  source_url TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assets_album ON assets(album_id);
CREATE INDEX IF NOT EXISTS idx_assets_created ON assets(created_at);
`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}

	return &index{db: db}, nil
}

func (i *index) Close() error {
	return i.db.Close()
}

// Reindex walks the library root and replaces the asset index in one
// transaction. Albums are the top-level subdirectories; the trash directory
// and dot-directories are skipped.
func (s *Store) Reindex(ctx context.Context) error {
	if err := s.authorized(ctx); err != nil {
		return err
	}

	type scanned struct {
		id        string
		albumID   string
		relPath   string
		createdAt time.Time
	}

	var found []scanned
	trashBase := filepath.Base(s.TrashDir)

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.Logger.Warn("Skipping unreadable path during scan", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != s.Root && (strings.HasPrefix(name, ".") || name == trashBase) {
				return filepath.SkipDir
			}
			return nil
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		albumID := ""
		if parts := strings.SplitN(filepath.ToSlash(rel), "/", 2); len(parts) == 2 {
			albumID = parts[0]
		}

		found = append(found, scanned{
			id:        filepath.ToSlash(rel),
			albumID:   albumID,
			relPath:   rel,
			createdAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan library root: %w", err)
	}

	tx, err := s.index.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reindex tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assets`); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	for _, a := range found {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO assets (id, album_id, rel_path, source_url, created_at) VALUES (?, ?, ?, '', ?)`,
			a.id, a.albumID, a.relPath, a.createdAt.UnixNano())
		if err != nil {
			return fmt.Errorf("failed to insert asset %s: %w", a.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reindex: %w", err)
	}

	s.Logger.Info("Library reindexed", "assets", len(found))
	return nil
}

// ListAlbums returns the non-empty albums in stable title order.
func (s *Store) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	if err := s.authorized(ctx); err != nil {
		return nil, err
	}

	rows, err := s.index.db.QueryContext(ctx, `
SELECT album_id, COUNT(*) FROM assets
WHERE album_id != ''
GROUP BY album_id
ORDER BY album_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	var albums []domain.Album
	for rows.Next() {
		var a domain.Album
		if err := rows.Scan(&a.ID, &a.PhotoCount); err != nil {
			return nil, fmt.Errorf("failed to scan album row: %w", err)
		}
		a.Title = a.ID
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating album rows: %w", err)
	}

	return albums, nil
}

// FetchCollection returns the newest-first image collection, optionally
// scoped to one album.
func (s *Store) FetchCollection(ctx context.Context, scope *domain.Album) (*domain.AssetCollection, error) {
	if err := s.authorized(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, album_id, rel_path, source_url, created_at FROM assets
ORDER BY created_at DESC, id`
	args := []any{}
	if scope != nil {
		query = `SELECT id, album_id, rel_path, source_url, created_at FROM assets
WHERE album_id = ?
ORDER BY created_at DESC, id`
		args = append(args, scope.ID)
	}

	rows, err := s.index.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	collection := &domain.AssetCollection{Scope: scope}
	for rows.Next() {
		var a domain.Asset
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.AlbumID, &a.RelPath, &a.SourceURL, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		a.CreatedAt = time.Unix(0, createdAt)
		collection.Assets = append(collection.Assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", err)
	}

	return collection, nil
}

func (i *index) deleteAssets(ctx context.Context, ids []string) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete tx: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete asset %s from index: %w", id, err)
		}
	}

	return tx.Commit()
}
