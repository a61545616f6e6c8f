// Package localstore adapts a filesystem photo library to the library.Gateway
// contract. Top-level subdirectories of the root act as albums; deletions are
// two-phase moves into a trash directory so a batch can be rolled back.
package localstore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/confirm"
	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/library"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	apperrors "github.com/Nico-ST/SvenSwipe/pkg/errors"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const preheatWorkers = 4

type Store struct {
	Root      string
	TrashDir  string
	StatePath string
	Logger    logger.Logger
	Confirmer confirm.Confirmer

	index   *index
	cache   *previewCache
	pool    *ants.Pool
	limiter *rate.Limiter
	httpc   *http.Client
}

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Config    *config.Config
	Logger    logger.Logger
	Confirmer confirm.Confirmer
}

func New(opts Opts) (*Store, error) {
	s, err := Open(
		opts.Config.Library.RootDir,
		opts.Config.Library.TrashDir,
		opts.Config.Library.StatePath,
		opts.Config.Library.IndexPath,
		opts.Config.Library.CacheSize,
		opts.Config.Library.PreheatRate,
		opts.Logger,
		opts.Confirmer,
	)
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return s.Close()
		},
	})

	return s, nil
}

// Open builds a Store outside of fx; tests use it directly.
func Open(root, trashDir, statePath, indexPath string, cacheSize, preheatPerSec int,
	log logger.Logger, confirmer confirm.Confirmer) (*Store, error) {

	idx, err := openIndex(indexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open library index: %w", err)
	}

	pool, err := ants.NewPool(preheatWorkers, ants.WithPreAlloc(true))
	if err != nil {
		idx.Close()
		return nil, fmt.Errorf("failed to create preheat pool: %w", err)
	}

	if cacheSize <= 0 {
		cacheSize = 24
	}
	if preheatPerSec <= 0 {
		preheatPerSec = 8
	}

	return &Store{
		Root:      root,
		TrashDir:  trashDir,
		StatePath: statePath,
		Logger:    log,
		Confirmer: confirmer,
		index:     idx,
		cache:     newPreviewCache(cacheSize),
		pool:      pool,
		limiter:   rate.NewLimiter(rate.Limit(preheatPerSec), preheatPerSec),
		httpc:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (s *Store) Close() error {
	s.pool.Release()
	return s.index.Close()
}

var _ library.Gateway = (*Store)(nil)

// CheckAuthorization reads the persisted grant marker. No side effects: a
// missing marker stays NotDetermined until RequestAuthorization is called.
func (s *Store) CheckAuthorization(ctx context.Context) (domain.AuthStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.AuthNotDetermined, err
	}

	data, err := os.ReadFile(s.StatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.AuthNotDetermined, nil
		}
		return domain.AuthNotDetermined, fmt.Errorf("failed to read authorization state: %w", err)
	}

	switch strings.TrimSpace(string(data)) {
	case "authorized":
		if !s.rootReadable() {
			return domain.AuthDenied, nil
		}
		return domain.AuthAuthorized, nil
	case "limited":
		return domain.AuthLimited, nil
	default:
		return domain.AuthDenied, nil
	}
}

// RequestAuthorization prompts the user and persists the answer. Callers must
// only invoke it while the status is NotDetermined.
func (s *Store) RequestAuthorization(ctx context.Context) (domain.AuthStatus, error) {
	granted, err := s.Confirmer.ConfirmAuthorization(ctx)
	if err != nil {
		return domain.AuthNotDetermined, fmt.Errorf("authorization prompt failed: %w", err)
	}

	state := "denied"
	status := domain.AuthDenied
	if granted && s.rootReadable() {
		state = "authorized"
		status = domain.AuthAuthorized
	}

	if err := os.WriteFile(s.StatePath, []byte(state+"\n"), 0o644); err != nil {
		return status, fmt.Errorf("failed to persist authorization state: %w", err)
	}

	s.Logger.Info("Library authorization determined", "status", status.String())
	return status, nil
}

func (s *Store) rootReadable() bool {
	f, err := os.Open(s.Root)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (s *Store) authorized(ctx context.Context) error {
	status, err := s.CheckAuthorization(ctx)
	if err != nil {
		return err
	}
	if !status.Granted() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
