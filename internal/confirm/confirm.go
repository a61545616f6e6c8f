package confirm

import "context"

// Confirmer models the user-facing dialogs the platform would normally own:
// the library authorization prompt and the batch-delete confirmation. Each
// capability is one asynchronous method; callers suspend until answered.
type Confirmer interface {
	// ConfirmAuthorization asks the user to grant library access.
	ConfirmAuthorization(ctx context.Context) (bool, error)

	// ConfirmDeletion asks once for a whole batch of count assets.
	ConfirmDeletion(ctx context.Context, count int) (bool, error)
}

// Static answers every prompt with a fixed response. It backs tests and the
// non-interactive mode.
type Static struct {
	Grant  bool
	Delete bool
}

func (s Static) ConfirmAuthorization(context.Context) (bool, error) { return s.Grant, nil }
func (s Static) ConfirmDeletion(context.Context, int) (bool, error) { return s.Delete, nil }

var _ Confirmer = Static{}
