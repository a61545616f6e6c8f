package session

import (
	"context"
	"image"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
)

// Snapshot is the published view of the session the presentation shell
// renders from. CurrentImage is nil while the preview is still loading (the
// shell shows a placeholder).
type Snapshot struct {
	State          domain.SessionState
	AuthStatus     domain.AuthStatus
	Cursor         int
	CollectionSize int
	PendingDeletes int
	CurrentAsset   *domain.Asset
	CurrentImage   image.Image
}

// Client drives the triage session: it owns the state machine, the cursor and
// the pending-delete queue, and is the only caller of the library gateway.
type Client interface {
	// Reload re-derives the state from authorization and a fresh collection
	// fetch. Idempotent and safe from any state.
	Reload(ctx context.Context) error

	// SelectAlbum discards pending decisions (nothing is deleted), sets the
	// scope and reloads. A nil album means all photos.
	SelectAlbum(ctx context.Context, album *domain.Album) error

	// Albums enumerates the store's albums, cached per session.
	Albums(ctx context.Context) ([]domain.Album, error)

	// RecordSwipe processes one confirmed swipe decision. It is a no-op
	// outside the ready state or while another action is in flight.
	RecordSwipe(ctx context.Context, decision domain.SwipeDecision) error

	// CommitPendingDeletes sends the queued assets to the gateway as one
	// batch. An empty queue is a no-op without a gateway call. On failure the
	// queue stays intact so the user can retry.
	CommitPendingDeletes(ctx context.Context) error

	// Snapshot returns the current published state.
	Snapshot() Snapshot

	// Updates yields a snapshot after every state change. Slow consumers may
	// miss intermediate snapshots but always receive the latest.
	Updates() <-chan Snapshot
}
