package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/repositories/history"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/fx"
)

// retention of trashed files and audit rows before permanent removal.
const retention = 5 * 24 * time.Hour

// Librarian is the maintenance-facing slice of the library store.
type Librarian interface {
	Reindex(ctx context.Context) error
	PurgeTrash(olderThan time.Duration) (int, error)
}

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Logger    logger.Logger
	Librarian Librarian
	History   history.Repository
}

type Maintenance struct {
	logger    logger.Logger
	librarian Librarian
	history   history.Repository
	scheduler gocron.Scheduler
}

func New(opts Opts) (*Maintenance, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create maintenance scheduler: %w", err)
	}

	m := &Maintenance{
		logger:    opts.Logger,
		librarian: opts.Librarian,
		history:   opts.History,
		scheduler: scheduler,
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return m.start()
		},
		OnStop: func(ctx context.Context) error {
			m.logger.Info("Stopping maintenance scheduler")
			return m.scheduler.Shutdown()
		},
	})

	return m, nil
}

func (m *Maintenance) start() error {
	// Nightly cleanup at 3:00 AM: purge old trash and old audit rows.
	_, err := m.scheduler.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0)),
		),
		gocron.NewTask(func() {
			m.logger.Info("Starting scheduled cleanup job")

			purged, err := m.librarian.PurgeTrash(retention)
			if err != nil {
				m.logger.Error("Failed to purge trash", "error", err)
			} else {
				m.logger.Info("Trash purge completed", "files_purged", purged)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			rowsDeleted, err := m.history.CleanupOldRecords(ctx, retention)
			if err != nil {
				m.logger.Error("Failed to clean up old triage records", "error", err)
				return
			}
			m.logger.Info("History cleanup completed", "rows_deleted", rowsDeleted)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	// Periodic reindex keeps the library index in step with external changes
	// to the photo directory.
	_, err = m.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			if err := m.librarian.Reindex(ctx); err != nil {
				m.logger.Error("Scheduled reindex failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule reindex job: %w", err)
	}

	m.scheduler.Start()
	return nil
}
