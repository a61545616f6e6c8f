package library

import (
	"context"
	"image"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=library.go -destination=mocks/mock.go -package=mocks

// Gateway is the narrow facade over the photo store. Preview delivery may
// legitimately be (nil, nil): the caller shows a loading placeholder and
// waits for a later delivery or a cursor move.
type Gateway interface {
	// CheckAuthorization reports the current status without side effects.
	CheckAuthorization(ctx context.Context) (domain.AuthStatus, error)

	// RequestAuthorization prompts the user and suspends until answered.
	// Only valid while the status is AuthNotDetermined.
	RequestAuthorization(ctx context.Context) (domain.AuthStatus, error)

	// ListAlbums enumerates non-empty albums in a stable order.
	ListAlbums(ctx context.Context) ([]domain.Album, error)

	// FetchCollection returns the newest-first image collection, optionally
	// scoped to one album.
	FetchCollection(ctx context.Context, scope *domain.Album) (*domain.AssetCollection, error)

	// RequestPreview loads a display image sized to fit targetSize, favouring
	// quality over speed. Non-local assets may be fetched over the network.
	RequestPreview(ctx context.Context, asset domain.Asset, targetSize image.Point) (image.Image, error)

	// BeginPreheat and EndPreheat are best-effort cache hints. They never
	// block and never fail observably; an empty asset set is a no-op.
	BeginPreheat(assets []domain.Asset, targetSize image.Point)
	EndPreheat(assets []domain.Asset, targetSize image.Point)

	// DeleteBatch removes all given assets behind exactly one user
	// confirmation. The batch is atomic: on error no asset was removed.
	// An empty batch is ErrEmptyBatch; callers guard before calling.
	DeleteBatch(ctx context.Context, assets []domain.Asset) error
}
