package fileprefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Nico-ST/SvenSwipe/internal/prefs"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"go.uber.org/fx"
)

type document struct {
	AdsEnabled bool `json:"ads_enabled"`
}

// Store keeps preferences in a small JSON file, written on every toggle.
type Store struct {
	path   string
	logger logger.Logger

	mu  sync.Mutex
	doc document
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

func New(opts Opts) (*Store, error) {
	s := &Store{
		path:   opts.Config.Prefs.Path,
		logger: opts.Logger,
		doc:    document{AdsEnabled: prefs.DefaultAdsEnabled},
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		// A corrupt prefs file falls back to defaults rather than failing
		// startup; the next write replaces it.
		opts.Logger.Warn("Ignoring unreadable preferences file", "path", s.path, "error", err)
		s.doc = document{AdsEnabled: prefs.DefaultAdsEnabled}
	}

	return s, nil
}

func (s *Store) AdsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.AdsEnabled
}

func (s *Store) SetAdsEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.AdsEnabled = enabled
	return s.flush()
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}
	return nil
}

var _ prefs.Store = (*Store)(nil)
