package sessionimpl

import (
	"context"
	"image"
	"sync"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/haptics"
	"github.com/Nico-ST/SvenSwipe/internal/library"
	"github.com/Nico-ST/SvenSwipe/internal/repositories/history"
	"github.com/Nico-ST/SvenSwipe/internal/session"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"go.uber.org/fx"
)

// previewSize is the display size requested for every preview and preheat
// hint. One size keeps the gateway cache coherent between the two paths.
var previewSize = image.Pt(1080, 1440)

type Opts struct {
	fx.In

	Gateway library.Gateway
	History history.Repository
	Haptics haptics.Engine
	Logger  logger.Logger
	Config  *config.Config
}

type SessionImpl struct {
	Gateway library.Gateway
	History history.Repository
	Haptics haptics.Engine
	Logger  logger.Logger
	Config  *config.Config

	mu       sync.Mutex
	state    domain.SessionState
	auth     domain.AuthStatus
	scope    *domain.Album
	coll     *domain.AssetCollection
	cursor   int
	pending  []domain.Asset
	queued   map[string]bool
	inFlight bool

	albums       []domain.Album
	albumsLoaded bool

	currentImage image.Image
	previewAsset string // asset ID the in-flight preview request belongs to
	warmed       []domain.Asset

	updates chan session.Snapshot
}

func New(opts Opts) *SessionImpl {
	return &SessionImpl{
		Gateway: opts.Gateway,
		History: opts.History,
		Haptics: opts.Haptics,
		Logger:  opts.Logger,
		Config:  opts.Config,
		state:   domain.StateLoading,
		queued:  make(map[string]bool),
		updates: make(chan session.Snapshot, 16),
	}
}

var _ session.Client = (*SessionImpl)(nil)

func (s *SessionImpl) Snapshot() session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *SessionImpl) Updates() <-chan session.Snapshot {
	return s.updates
}

func (s *SessionImpl) snapshotLocked() session.Snapshot {
	snap := session.Snapshot{
		State:          s.state,
		AuthStatus:     s.auth,
		Cursor:         s.cursor,
		CollectionSize: s.coll.Len(),
		PendingDeletes: len(s.pending),
		CurrentImage:   s.currentImage,
	}
	if asset, ok := s.coll.At(s.cursor); ok {
		snap.CurrentAsset = &asset
	}
	return snap
}

// publishLocked pushes the latest snapshot, displacing the oldest queued one
// when the consumer lags.
func (s *SessionImpl) publishLocked() {
	snap := s.snapshotLocked()
	for {
		select {
		case s.updates <- snap:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

func (s *SessionImpl) Albums(ctx context.Context) ([]domain.Album, error) {
	s.mu.Lock()
	if s.albumsLoaded {
		albums := s.albums
		s.mu.Unlock()
		return albums, nil
	}
	s.mu.Unlock()

	albums, err := s.Gateway.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.albums = albums
	s.albumsLoaded = true
	s.mu.Unlock()
	return albums, nil
}

func (s *SessionImpl) preheatWindow() int {
	if s.Config != nil && s.Config.Session.PreheatWindow > 0 {
		return s.Config.Session.PreheatWindow
	}
	return 6
}
