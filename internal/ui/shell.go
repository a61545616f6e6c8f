// Package ui is the presentation shell: a line-oriented console surface that
// routes between the loading/unauthorized/empty/ready states and forwards
// commands to the session controller. It is deliberately thin; all triage
// semantics live in the session and swipe packages.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Nico-ST/SvenSwipe/internal/ads"
	"github.com/Nico-ST/SvenSwipe/internal/domain"
	"github.com/Nico-ST/SvenSwipe/internal/haptics"
	"github.com/Nico-ST/SvenSwipe/internal/prefs"
	"github.com/Nico-ST/SvenSwipe/internal/session"
	"github.com/Nico-ST/SvenSwipe/internal/swipe"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"go.uber.org/fx"
)

const bannerWidth = 320

type Opts struct {
	fx.In

	Session session.Client
	Prefs   prefs.Store
	Ads     ads.Provider
	Haptics haptics.Engine
	Logger  logger.Logger
	Config  *config.Config
	Stdin   *bufio.Reader
	Out     io.Writer
}

type Shell struct {
	session session.Client
	prefs   prefs.Store
	ads     ads.Provider
	logger  logger.Logger
	tracker *swipe.Tracker
	in      *bufio.Reader
	out     io.Writer

	bannerHeight int
}

func New(opts Opts) *Shell {
	s := &Shell{
		session: opts.Session,
		prefs:   opts.Prefs,
		ads:     opts.Ads,
		logger:  opts.Logger,
		in:      opts.Stdin,
		out:     opts.Out,
	}

	// Typed triage commands run a full programmatic gesture through the
	// tracker, so the shell honors the same animate-then-callback-then-reset
	// ordering a touch surface would.
	s.tracker = swipe.NewTracker(opts.Config.Session.SwipeThreshold, opts.Haptics, func(d domain.SwipeDecision) {
		if err := s.session.RecordSwipe(context.Background(), d); err != nil {
			s.logger.Error("Failed to record swipe", "error", err)
		}
	})

	return s
}

// Run drives the shell until quit, EOF or context cancellation.
func (s *Shell) Run(ctx context.Context) error {
	go s.renderUpdates(ctx)

	if err := s.session.Reload(ctx); err != nil {
		s.logger.Error("Initial reload failed", "error", err)
	}
	s.refreshBanner(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(s.out, "> ")

		line, err := s.in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to read command: %w", err)
		}

		if done := s.dispatch(ctx, strings.TrimSpace(line)); done {
			return nil
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true

	case "k", "keep":
		s.tracker.Swipe(domain.DecisionKeep)

	case "d", "delete":
		s.tracker.Swipe(domain.DecisionDelete)

	case "commit":
		if err := s.session.CommitPendingDeletes(ctx); err != nil {
			fmt.Fprintf(s.out, "Deletion failed: %s. Your pending photos are untouched; retry with 'commit'.\n", err)
		}

	case "reload":
		if err := s.session.Reload(ctx); err != nil {
			fmt.Fprintf(s.out, "Reload failed: %s\n", err)
		}

	case "albums":
		s.printAlbums(ctx)

	case "album":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "Usage: album <title>")
			break
		}
		s.selectAlbum(ctx, strings.Join(fields[1:], " "))

	case "all":
		if err := s.session.SelectAlbum(ctx, nil); err != nil {
			fmt.Fprintf(s.out, "Failed to select all photos: %s\n", err)
		}

	case "ads":
		if len(fields) < 2 || (fields[1] != "on" && fields[1] != "off") {
			fmt.Fprintln(s.out, "Usage: ads on|off")
			break
		}
		s.toggleAds(ctx, fields[1] == "on")

	case "status":
		s.render(s.session.Snapshot())

	default:
		fmt.Fprintf(s.out, "Unknown command %q. Commands: albums, album <title>, all, keep, delete, commit, reload, ads on|off, status, quit\n", fields[0])
	}

	return false
}

func (s *Shell) printAlbums(ctx context.Context) {
	albums, err := s.session.Albums(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to list albums: %s\n", err)
		return
	}
	if len(albums) == 0 {
		fmt.Fprintln(s.out, "No albums.")
		return
	}
	for _, a := range albums {
		fmt.Fprintf(s.out, "  %s (%d photos)\n", a.Title, a.PhotoCount)
	}
}

func (s *Shell) selectAlbum(ctx context.Context, title string) {
	albums, err := s.session.Albums(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to list albums: %s\n", err)
		return
	}
	for i := range albums {
		if albums[i].Title == title {
			if err := s.session.SelectAlbum(ctx, &albums[i]); err != nil {
				fmt.Fprintf(s.out, "Failed to select album: %s\n", err)
			}
			return
		}
	}
	fmt.Fprintf(s.out, "No album named %q.\n", title)
}

func (s *Shell) toggleAds(ctx context.Context, enabled bool) {
	if err := s.prefs.SetAdsEnabled(enabled); err != nil {
		fmt.Fprintf(s.out, "Failed to save preference: %s\n", err)
		return
	}
	if enabled {
		s.refreshBanner(ctx)
	} else {
		s.bannerHeight = 0
	}
	fmt.Fprintf(s.out, "Ads %s.\n", map[bool]string{true: "enabled", false: "disabled"}[enabled])
}

// refreshBanner loads the banner creative. The slot stays at zero height
// until a load succeeds.
func (s *Shell) refreshBanner(ctx context.Context) {
	if !s.prefs.AdsEnabled() {
		s.bannerHeight = 0
		return
	}

	banner, err := s.ads.Load(ctx, bannerWidth)
	if err != nil {
		s.logger.Debug("Banner load failed, keeping zero-height slot", "error", err)
		s.bannerHeight = 0
		return
	}
	s.bannerHeight = banner.Height
}

func (s *Shell) renderUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-s.session.Updates():
			s.render(snap)
		}
	}
}

func (s *Shell) render(snap session.Snapshot) {
	switch snap.State {
	case domain.StateLoading:
		fmt.Fprintln(s.out, "Loading your library...")
	case domain.StateUnauthorized:
		fmt.Fprintln(s.out, "No access to the photo library. Grant access in settings, then 'reload'.")
	case domain.StateEmpty:
		if snap.PendingDeletes > 0 {
			fmt.Fprintf(s.out, "All photos triaged. %d pending deletion, 'commit' to delete them.\n", snap.PendingDeletes)
		} else {
			fmt.Fprintln(s.out, "No photos here. 'reload' to check again.")
		}
	case domain.StateReady:
		pos := fmt.Sprintf("%d/%d", snap.Cursor+1, snap.CollectionSize)
		img := "loading..."
		if snap.CurrentImage != nil {
			b := snap.CurrentImage.Bounds()
			img = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
		}
		fmt.Fprintf(s.out, "Photo %s [%s], %d pending deletion, banner %dpx\n",
			pos, img, snap.PendingDeletes, s.bannerHeight)
	}
}
