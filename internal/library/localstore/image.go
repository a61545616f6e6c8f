package localstore

import (
	"container/list"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	apperrors "github.com/Nico-ST/SvenSwipe/pkg/errors"
	"github.com/nfnt/resize"
)

// RequestPreview returns a display image sized to fit targetSize. A cache hit
// is served directly; otherwise the asset is decoded (local file or HTTP for
// non-local assets) and downscaled with Lanczos resampling.
func (s *Store) RequestPreview(ctx context.Context, asset domain.Asset, targetSize image.Point) (image.Image, error) {
	if img, ok := s.cache.get(cacheKey(asset.ID, targetSize)); ok {
		return img, nil
	}
	return s.loadPreview(ctx, asset, targetSize)
}

func (s *Store) loadPreview(ctx context.Context, asset domain.Asset, targetSize image.Point) (image.Image, error) {
	src, err := s.decode(ctx, asset)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Join(apperrors.ErrImageLoad, err), "preview load failed")
	}

	img := src
	if targetSize.X > 0 && targetSize.Y > 0 {
		img = resize.Thumbnail(uint(targetSize.X), uint(targetSize.Y), src, resize.Lanczos3)
	}

	s.cache.put(cacheKey(asset.ID, targetSize), img)
	return img, nil
}

func (s *Store) decode(ctx context.Context, asset domain.Asset) (image.Image, error) {
	if asset.Local() {
		f, err := os.Open(filepath.Join(s.Root, asset.RelPath))
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		return img, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.SourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, asset.SourceURL)
	}

	img, _, err := image.Decode(resp.Body)
	return img, err
}

// BeginPreheat submits decode jobs for the hinted assets to the worker pool.
// Jobs are paced by the limiter so hint bursts never starve an interactive
// preview load. Hints never block and never fail observably.
func (s *Store) BeginPreheat(assets []domain.Asset, targetSize image.Point) {
	for _, asset := range assets {
		a := asset
		if _, ok := s.cache.get(cacheKey(a.ID, targetSize)); ok {
			continue
		}

		err := s.pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			if _, err := s.loadPreview(ctx, a, targetSize); err != nil {
				s.Logger.Debug("Preheat decode failed", "asset", a.ID, "error", err)
			}
		})
		if err != nil {
			s.Logger.Debug("Preheat submit rejected", "asset", a.ID, "error", err)
		}
	}
}

// EndPreheat drops cache entries for assets that left the hint window.
func (s *Store) EndPreheat(assets []domain.Asset, targetSize image.Point) {
	for _, asset := range assets {
		s.cache.drop(cacheKey(asset.ID, targetSize))
	}
}

func cacheKey(assetID string, size image.Point) string {
	return fmt.Sprintf("%s@%dx%d", assetID, size.X, size.Y)
}

// previewCache is a small LRU keyed by asset and target size.
type previewCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type cacheEntry struct {
	key string
	img image.Image
}

func newPreviewCache(capacity int) *previewCache {
	return &previewCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *previewCache) get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).img, true
}

func (c *previewCache) put(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).img = img
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, img: img})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *previewCache) drop(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}
