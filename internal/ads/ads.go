package ads

import (
	"context"
	"errors"
)

var ErrNoFill = errors.New("no ad returned for slot")

// Banner is a loaded creative. Height is the concrete height the host must
// size its reserved slot to; until a load succeeds the slot stays at zero.
type Banner struct {
	Width    int
	Height   int
	Creative []byte
}

// Provider is the advertisement collaborator: width in, height out. Anything
// beyond that is the provider's own business.
type Provider interface {
	Load(ctx context.Context, width int) (*Banner, error)
}
