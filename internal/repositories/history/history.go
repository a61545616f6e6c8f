package history

import (
	"context"
	"errors"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/domain"
)

var ErrNotFound = errors.New("triage record not found")
var ErrCannotCreate = errors.New("error create triage record")

//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=mocks/mock.go -package=mocks

// Repository is the audit log of swipe decisions. Writes are best-effort:
// the session controller must keep working when history is unavailable.
type Repository interface {
	Create(ctx context.Context, record domain.TriageRecord) error
	MarkCommitted(ctx context.Context, assetIDs []string, committedAt time.Time) error
	ListRecent(ctx context.Context, limit int) ([]*domain.TriageRecord, error)
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
