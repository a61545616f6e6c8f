package sessionimpl

import (
	"context"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	apperrors "github.com/Nico-ST/SvenSwipe/pkg/errors"
)

const previewTimeout = 30 * time.Second

// Reload re-runs the authorization/fetch flow. On an I/O failure the state
// stays loading, which another explicit reload recovers.
func (s *SessionImpl) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.state = domain.StateLoading
	s.currentImage = nil
	s.previewAsset = ""
	scope := s.scope
	s.publishLocked()
	s.mu.Unlock()

	status, err := s.Gateway.CheckAuthorization(ctx)
	if err != nil {
		s.Logger.Error("Authorization check failed", "error", err)
		return err
	}
	if status == domain.AuthNotDetermined {
		status, err = s.Gateway.RequestAuthorization(ctx)
		if err != nil {
			s.Logger.Error("Authorization request failed", "error", err)
			return err
		}
	}

	s.mu.Lock()
	s.auth = status
	if !status.Granted() {
		s.state = domain.StateUnauthorized
		s.publishLocked()
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	coll, err := s.Gateway.FetchCollection(ctx, scope)
	if err != nil {
		if apperrors.IsPermissionDenied(err) {
			s.mu.Lock()
			s.auth = domain.AuthDenied
			s.state = domain.StateUnauthorized
			s.publishLocked()
			s.mu.Unlock()
			return nil
		}
		s.Logger.Error("Failed to fetch collection", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.coll = coll
	s.cursor = 0
	s.warmed = nil

	if coll.Len() == 0 {
		s.state = domain.StateEmpty
		s.publishLocked()
		return nil
	}

	s.state = domain.StateReady
	s.requestPreviewLocked()
	s.refreshPreheatLocked()
	s.publishLocked()
	return nil
}

// SelectAlbum discards all pending decisions without committing them, sets
// the scope and reloads.
func (s *SessionImpl) SelectAlbum(ctx context.Context, album *domain.Album) error {
	s.mu.Lock()
	s.pending = nil
	s.queued = make(map[string]bool)
	s.scope = album
	s.mu.Unlock()

	return s.Reload(ctx)
}

// requestPreviewLocked issues an async preview load for the cursor asset.
// The response is applied only if the cursor asset is still the one the
// request was issued for; late deliveries for superseded positions are
// dropped.
func (s *SessionImpl) requestPreviewLocked() {
	asset, ok := s.coll.At(s.cursor)
	if !ok {
		return
	}

	s.previewAsset = asset.ID
	s.currentImage = nil

	go func(asset domain.Asset) {
		ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
		defer cancel()

		img, err := s.Gateway.RequestPreview(ctx, asset, previewSize)

		s.mu.Lock()
		defer s.mu.Unlock()

		current, ok := s.coll.At(s.cursor)
		if !ok || current.ID != asset.ID || s.previewAsset != asset.ID {
			s.Logger.Debug("Dropping stale preview response", "asset", asset.ID)
			return
		}
		if err != nil {
			// Silent degradation: the placeholder persists, no error surfaces.
			s.Logger.Debug("Preview load failed, keeping placeholder", "asset", asset.ID, "error", err)
			return
		}
		if img == nil {
			return
		}

		s.currentImage = img
		s.publishLocked()
	}(asset)
}

// refreshPreheatLocked shifts the hint window to the next assets ahead of the
// cursor, starting caching for the newly-in-range ones and releasing the ones
// that fell out of range. The window is clamped to the collection end, so
// out-of-range indices are never hinted.
func (s *SessionImpl) refreshPreheatLocked() {
	window := s.coll.Window(s.cursor, s.preheatWindow())

	inWindow := make(map[string]bool, len(window))
	for _, a := range window {
		inWindow[a.ID] = true
	}
	wasWarm := make(map[string]bool, len(s.warmed))
	for _, a := range s.warmed {
		wasWarm[a.ID] = true
	}

	var begin, end []domain.Asset
	for _, a := range window {
		if !wasWarm[a.ID] {
			begin = append(begin, a)
		}
	}
	for _, a := range s.warmed {
		if !inWindow[a.ID] {
			end = append(end, a)
		}
	}

	if len(begin) > 0 {
		s.Gateway.BeginPreheat(begin, previewSize)
	}
	if len(end) > 0 {
		s.Gateway.EndPreheat(end, previewSize)
	}

	s.warmed = append(s.warmed[:0], window...)
}
