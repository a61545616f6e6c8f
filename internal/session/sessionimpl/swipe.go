package sessionimpl

import (
	"context"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/haptics"
	"github.com/Nico-ST/SvenSwipe/pkg/retry"
	"github.com/google/uuid"
)

const historyTimeout = 10 * time.Second

// RecordSwipe processes one confirmed decision: keep advances the cursor,
// delete queues the current asset first. A swipe outside the ready state or
// while another action is in flight is ignored.
func (s *SessionImpl) RecordSwipe(ctx context.Context, decision domain.SwipeDecision) error {
	s.mu.Lock()

	if s.state != domain.StateReady || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	asset, ok := s.coll.At(s.cursor)
	if !ok {
		s.mu.Unlock()
		return nil
	}

	s.inFlight = true

	if decision == domain.DecisionDelete {
		// An asset enters the queue at most once; the collection itself is
		// untouched until the batch commits.
		if !s.queued[asset.ID] {
			s.queued[asset.ID] = true
			s.pending = append(s.pending, asset)
		}
		s.Haptics.Pulse(haptics.Warning)
	} else {
		s.Haptics.Pulse(haptics.Light)
	}

	s.advanceCursorLocked()
	s.inFlight = false
	s.publishLocked()
	s.mu.Unlock()

	s.recordDecision(asset, decision)
	return nil
}

func (s *SessionImpl) advanceCursorLocked() {
	s.cursor++

	if _, ok := s.coll.At(s.cursor); ok {
		s.requestPreviewLocked()
	} else {
		s.state = domain.StateEmpty
		s.currentImage = nil
		s.previewAsset = ""
	}

	s.refreshPreheatLocked()
}

// CommitPendingDeletes sends the queue to the gateway as one batch. The empty
// queue short-circuits before any gateway call. On failure the queue is left
// intact and the error is returned without further recovery.
func (s *SessionImpl) CommitPendingDeletes(ctx context.Context) error {
	s.mu.Lock()
	if len(s.pending) == 0 || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	batch := make([]domain.Asset, len(s.pending))
	copy(batch, s.pending)
	scope := s.scope
	s.mu.Unlock()

	if err := s.Gateway.DeleteBatch(ctx, batch); err != nil {
		s.Logger.Error("Batch deletion failed, keeping pending queue", "count", len(batch), "error", err)
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
		return err
	}

	s.markCommitted(batch)

	// Indices shift after a deletion, so the collection must be re-fetched
	// before the cursor can be trusted again.
	coll, err := s.Gateway.FetchCollection(ctx, scope)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inFlight = false
	s.pending = nil
	s.queued = make(map[string]bool)

	if err != nil {
		s.Logger.Error("Failed to re-fetch collection after deletion", "error", err)
		s.state = domain.StateLoading
		s.currentImage = nil
		s.publishLocked()
		return err
	}

	s.coll = coll
	if s.cursor > coll.Len() {
		s.cursor = coll.Len()
	}

	if coll.Len() == 0 || s.cursor >= coll.Len() {
		s.state = domain.StateEmpty
		s.currentImage = nil
		s.previewAsset = ""
	} else {
		s.state = domain.StateReady
		s.requestPreviewLocked()
	}

	s.warmed = nil
	s.refreshPreheatLocked()
	s.publishLocked()
	return nil
}

// recordDecision writes the audit record in the background. History is
// best-effort and never blocks or fails the triage flow.
func (s *SessionImpl) recordDecision(asset domain.Asset, decision domain.SwipeDecision) {
	if s.History == nil {
		return
	}

	record := domain.TriageRecord{
		ID:        uuid.NewString(),
		AssetID:   asset.ID,
		Decision:  decision,
		DecidedAt: time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		err := retry.Do(ctx, s.Logger, "record triage decision", func() error {
			return s.History.Create(ctx, record)
		}, retry.DefaultConfig())
		if err != nil {
			s.Logger.Warn("Failed to record triage decision", "asset", asset.ID, "error", err)
		}
	}()
}

func (s *SessionImpl) markCommitted(batch []domain.Asset) {
	if s.History == nil {
		return
	}

	ids := make([]string, 0, len(batch))
	for _, a := range batch {
		ids = append(ids, a.ID)
	}
	committedAt := time.Now()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		err := retry.Do(ctx, s.Logger, "mark triage records committed", func() error {
			return s.History.MarkCommitted(ctx, ids, committedAt)
		}, retry.DefaultConfig())
		if err != nil {
			s.Logger.Warn("Failed to mark triage records committed", "count", len(ids), "error", err)
		}
	}()
}
