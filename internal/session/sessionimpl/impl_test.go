package sessionimpl

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/haptics"
	"github.com/Nico-ST/SvenSwipe/internal/library/mocks"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	apperrors "github.com/Nico-ST/SvenSwipe/pkg/errors"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeGateway is a deterministic in-memory Gateway. Previews resolve
// immediately unless a block channel is installed for the asset.
type fakeGateway struct {
	mu sync.Mutex

	auth       domain.AuthStatus
	authOnAsk  domain.AuthStatus
	assets     []domain.Asset
	albums     []domain.Album
	deleteErr  error
	fetchCalls int
	listCalls  int
	deleted    [][]domain.Asset
	begun      [][]domain.Asset
	ended      [][]domain.Asset

	previewBlocks map[string]chan struct{}
}

func newFakeGateway(auth domain.AuthStatus, assets ...domain.Asset) *fakeGateway {
	return &fakeGateway{
		auth:          auth,
		assets:        assets,
		previewBlocks: map[string]chan struct{}{},
	}
}

func (g *fakeGateway) CheckAuthorization(context.Context) (domain.AuthStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.auth, nil
}

func (g *fakeGateway) RequestAuthorization(context.Context) (domain.AuthStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.auth = g.authOnAsk
	return g.auth, nil
}

func (g *fakeGateway) ListAlbums(context.Context) ([]domain.Album, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	return g.albums, nil
}

func (g *fakeGateway) FetchCollection(_ context.Context, scope *domain.Album) (*domain.AssetCollection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fetchCalls++

	coll := &domain.AssetCollection{Scope: scope}
	for _, a := range g.assets {
		if scope == nil || a.AlbumID == scope.ID {
			coll.Assets = append(coll.Assets, a)
		}
	}
	return coll, nil
}

func (g *fakeGateway) RequestPreview(_ context.Context, asset domain.Asset, _ image.Point) (image.Image, error) {
	g.mu.Lock()
	block := g.previewBlocks[asset.ID]
	g.mu.Unlock()

	if block != nil {
		<-block
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (g *fakeGateway) BeginPreheat(assets []domain.Asset, _ image.Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.begun = append(g.begun, assets)
}

func (g *fakeGateway) EndPreheat(assets []domain.Asset, _ image.Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ended = append(g.ended, assets)
}

func (g *fakeGateway) DeleteBatch(_ context.Context, batch []domain.Asset) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.deleted = append(g.deleted, batch)
	if g.deleteErr != nil {
		return g.deleteErr
	}

	doomed := map[string]bool{}
	for _, a := range batch {
		doomed[a.ID] = true
	}
	var kept []domain.Asset
	for _, a := range g.assets {
		if !doomed[a.ID] {
			kept = append(kept, a)
		}
	}
	g.assets = kept
	return nil
}

// holdingGateway parks DeleteBatch until released, exposing the in-flight
// window to the test.
type holdingGateway struct {
	*fakeGateway
	entered atomic.Bool
	release chan struct{}
}

func (h *holdingGateway) DeleteBatch(ctx context.Context, batch []domain.Asset) error {
	h.entered.Store(true)
	<-h.release
	return h.fakeGateway.DeleteBatch(ctx, batch)
}

type countingHaptics struct {
	mu     sync.Mutex
	pulses []haptics.Kind
}

func (h *countingHaptics) Pulse(kind haptics.Kind) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pulses = append(h.pulses, kind)
}

func (h *countingHaptics) kinds() []haptics.Kind {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]haptics.Kind(nil), h.pulses...)
}

func asset(id string, albumID string, age time.Duration) domain.Asset {
	return domain.Asset{ID: id, AlbumID: albumID, RelPath: id, CreatedAt: time.Now().Add(-age)}
}

func newSession(gw *fakeGateway, engine haptics.Engine) *SessionImpl {
	if engine == nil {
		engine = haptics.Noop{}
	}
	cfg := &config.Config{}
	cfg.Session.PreheatWindow = 6

	return New(Opts{
		Gateway: gw,
		History: nil,
		Haptics: engine,
		Logger:  logger.New(logger.Opts{}),
		Config:  cfg,
	})
}

func TestReloadDeniedAuthorizationGoesUnauthorized(t *testing.T) {
	gw := newFakeGateway(domain.AuthDenied, asset("a", "", time.Minute))
	s := newSession(gw, nil)

	require.NoError(t, s.Reload(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, domain.StateUnauthorized, snap.State)
	assert.Equal(t, domain.AuthDenied, snap.AuthStatus)
	// Denied authorization never reaches the collection or album fetch.
	assert.Zero(t, gw.fetchCalls)
	assert.Zero(t, gw.listCalls)
}

func TestReloadRequestsAuthorizationWhenNotDetermined(t *testing.T) {
	gw := newFakeGateway(domain.AuthNotDetermined, asset("a", "", time.Minute))
	gw.authOnAsk = domain.AuthAuthorized
	s := newSession(gw, nil)

	require.NoError(t, s.Reload(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, domain.StateReady, snap.State)
	assert.Equal(t, 0, snap.Cursor)
	assert.Equal(t, 1, snap.CollectionSize)
}

func TestReloadEmptyCollectionGoesEmpty(t *testing.T) {
	gw := newFakeGateway(domain.AuthAuthorized)
	s := newSession(gw, nil)

	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, domain.StateEmpty, s.Snapshot().State)
}

func TestKeepKeepDeleteScenario(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
		asset("c", "", 3*time.Minute),
	)
	engine := &countingHaptics{}
	s := newSession(gw, engine)

	require.NoError(t, s.Reload(ctx))
	require.Equal(t, domain.StateReady, s.Snapshot().State)

	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionKeep))
	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionKeep))
	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Cursor)
	assert.Equal(t, 1, snap.PendingDeletes)
	assert.Equal(t, domain.StateEmpty, snap.State)
	assert.Equal(t, []haptics.Kind{haptics.Light, haptics.Light, haptics.Warning}, engine.kinds())

	require.NoError(t, s.CommitPendingDeletes(ctx))

	require.Len(t, gw.deleted, 1)
	require.Len(t, gw.deleted[0], 1)
	assert.Equal(t, "c", gw.deleted[0][0].ID)

	snap = s.Snapshot()
	assert.Zero(t, snap.PendingDeletes)
	assert.Equal(t, 2, snap.CollectionSize)
	assert.Equal(t, domain.StateEmpty, snap.State)
}

func TestDeleteQueuesAssetAtMostOnce(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
	)
	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))

	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))

	// Force the cursor back onto the queued asset; a second delete of the
	// same asset must not duplicate it in the queue.
	s.mu.Lock()
	s.cursor = 0
	s.state = domain.StateReady
	s.mu.Unlock()

	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))
	assert.Equal(t, 1, s.Snapshot().PendingDeletes)
}

func TestSwipeIgnoredOutsideReady(t *testing.T) {
	gw := newFakeGateway(domain.AuthAuthorized)
	engine := &countingHaptics{}
	s := newSession(gw, engine)

	// Still loading: nothing happens.
	require.NoError(t, s.RecordSwipe(context.Background(), domain.DecisionDelete))
	assert.Zero(t, s.Snapshot().PendingDeletes)
	assert.Empty(t, engine.kinds())
}

func TestCommitEmptyQueueMakesNoGatewayCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	// No DeleteBatch or FetchCollection expectation: any call would fail.

	cfg := &config.Config{}
	s := New(Opts{
		Gateway: gw,
		Haptics: haptics.Noop{},
		Logger:  logger.New(logger.Opts{}),
		Config:  cfg,
	})

	require.NoError(t, s.CommitPendingDeletes(context.Background()))
}

func TestCommitFailureKeepsQueue(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
	)
	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))

	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))

	gw.deleteErr = apperrors.Wrap(apperrors.ErrDeletionFailed, "store unavailable")
	err := s.CommitPendingDeletes(ctx)
	assert.ErrorIs(t, err, apperrors.ErrDeletionFailed)

	// Queue intact, collection untouched: the user can retry.
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.PendingDeletes)
	assert.Equal(t, 2, snap.CollectionSize)

	gw.deleteErr = nil
	require.NoError(t, s.CommitPendingDeletes(ctx))
	snap = s.Snapshot()
	assert.Zero(t, snap.PendingDeletes)
	assert.Equal(t, 1, snap.CollectionSize)
}

func TestCommitRevalidatesCursorAgainstNewSize(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
		asset("c", "", 3*time.Minute),
	)
	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))

	// Delete the first, keep sitting at cursor 1 of 3.
	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))
	require.Equal(t, domain.StateReady, s.Snapshot().State)

	require.NoError(t, s.CommitPendingDeletes(ctx))

	snap := s.Snapshot()
	assert.Equal(t, 2, snap.CollectionSize)
	assert.Equal(t, 1, snap.Cursor)
	// cursor 1 < size 2: still ready, current preview re-requested.
	assert.Equal(t, domain.StateReady, snap.State)
	require.NotNil(t, snap.CurrentAsset)
	assert.Equal(t, "c", snap.CurrentAsset.ID)
}

func TestSelectAlbumClearsQueueAndResetsCursor(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "trip", 2*time.Minute),
		asset("c", "trip", 3*time.Minute),
	)
	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))

	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))
	require.Equal(t, 1, s.Snapshot().PendingDeletes)

	require.NoError(t, s.SelectAlbum(ctx, &domain.Album{ID: "trip", Title: "trip"}))

	snap := s.Snapshot()
	// Pending decisions are discarded, nothing was deleted.
	assert.Zero(t, snap.PendingDeletes)
	assert.Empty(t, gw.deleted)
	assert.Equal(t, 0, snap.Cursor)
	assert.Equal(t, 2, snap.CollectionSize)
	assert.Equal(t, domain.StateReady, snap.State)
}

func TestPreheatWindowNeverExceedsCollection(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
		asset("c", "", 3*time.Minute),
	)
	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))

	// Window of 6 over 3 assets at cursor 0: hints for exactly the 2 ahead.
	require.Len(t, gw.begun, 1)
	require.Len(t, gw.begun[0], 2)
	assert.Equal(t, "b", gw.begun[0][0].ID)
	assert.Equal(t, "c", gw.begun[0][1].ID)

	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionKeep))
	// Cursor 1: window is only "c", already warm, so no new hints.
	assert.Len(t, gw.begun, 1)
	// "b" is now behind the cursor and released.
	require.Len(t, gw.ended, 1)
	assert.Equal(t, "b", gw.ended[0][0].ID)
}

func TestStalePreviewResponseIsDropped(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
	)
	blockA := make(chan struct{})
	gw.previewBlocks["a"] = blockA

	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))

	// Preview for "a" is stuck in flight; the swipe moves the cursor to "b"
	// whose preview resolves immediately.
	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionKeep))
	require.Eventually(t, func() bool {
		return s.Snapshot().CurrentImage != nil
	}, 2*time.Second, 10*time.Millisecond)

	imgB := s.Snapshot().CurrentImage

	// The late delivery for "a" must be discarded, not applied over "b".
	close(blockA)
	time.Sleep(50 * time.Millisecond)

	snap := s.Snapshot()
	require.NotNil(t, snap.CurrentAsset)
	assert.Equal(t, "b", snap.CurrentAsset.ID)
	assert.Same(t, imgB, snap.CurrentImage)
}

func TestCommitBlocksOverlappingSwipes(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized,
		asset("a", "", time.Minute),
		asset("b", "", 2*time.Minute),
	)
	s := newSession(gw, nil)
	require.NoError(t, s.Reload(ctx))
	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionDelete))

	// Hold the commit inside the gateway.
	release := make(chan struct{})
	gw.mu.Lock()
	gw.deleteErr = nil
	gw.mu.Unlock()
	held := &holdingGateway{fakeGateway: gw, release: release}
	s.Gateway = held

	done := make(chan error, 1)
	go func() { done <- s.CommitPendingDeletes(ctx) }()

	// Wait until the commit reached the gateway, then try to swipe: the
	// in-flight guard must reject it.
	require.Eventually(t, func() bool { return held.entered.Load() }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.RecordSwipe(ctx, domain.DecisionKeep))
	assert.Equal(t, 1, s.Snapshot().Cursor)

	close(release)
	require.NoError(t, <-done)
}

func TestAlbumsAreCachedPerSession(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway(domain.AuthAuthorized)
	gw.albums = []domain.Album{{ID: "trip", Title: "trip", PhotoCount: 2}}
	s := newSession(gw, nil)

	first, err := s.Albums(ctx)
	require.NoError(t, err)
	second, err := s.Albums(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, gw.listCalls)
}
