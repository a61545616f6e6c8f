package app

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/Nico-ST/SvenSwipe/internal/ads"
	"github.com/Nico-ST/SvenSwipe/internal/ads/httpads"
	"github.com/Nico-ST/SvenSwipe/internal/confirm"
	"github.com/Nico-ST/SvenSwipe/internal/haptics"
	"github.com/Nico-ST/SvenSwipe/internal/library"
	"github.com/Nico-ST/SvenSwipe/internal/library/localstore"
	"github.com/Nico-ST/SvenSwipe/internal/maintenance"
	_ "github.com/Nico-ST/SvenSwipe/internal/migrations"
	"github.com/Nico-ST/SvenSwipe/internal/prefs"
	"github.com/Nico-ST/SvenSwipe/internal/prefs/fileprefs"
	repositories "github.com/Nico-ST/SvenSwipe/internal/repositories/fx"
	"github.com/Nico-ST/SvenSwipe/internal/session"
	"github.com/Nico-ST/SvenSwipe/internal/session/sessionimpl"
	"github.com/Nico-ST/SvenSwipe/internal/ui"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"github.com/Nico-ST/SvenSwipe/pkg/pgx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Provide(
		func() *bufio.Reader { return bufio.NewReader(os.Stdin) },
		func() io.Writer { return os.Stdout },
	),
	fx.Provide(
		fx.Annotate(
			confirm.NewStdinConfirmer,
			fx.As(new(confirm.Confirmer)),
		), fx.Annotate(
			localstore.New,
			fx.As(new(library.Gateway)),
			fx.As(new(maintenance.Librarian)),
		), fx.Annotate(
			sessionimpl.New,
			fx.As(new(session.Client)),
		),
		fx.Annotate(
			fileprefs.New,
			fx.As(new(prefs.Store)),
		),
		fx.Annotate(
			httpads.New,
			fx.As(new(ads.Provider)),
		),
		fx.Annotate(
			haptics.NewLogEngine,
			fx.As(new(haptics.Engine)),
		),
		ui.New,
	),
	repositories.Module,
	fx.Invoke(
		func(c *config.Config) error {
			if err := goose.SetDialect("pgx"); err != nil {
				return err
			}

			db, err := sql.Open("pgx", c.PostgresDSN())
			if err != nil {
				return err
			}
			defer db.Close()

			// The triage_history migrations are registered Go migrations
			// compiled into the binary; no on-disk migration dir is needed.
			return goose.Up(db, ".")
		}),
	fx.Invoke(maintenance.New),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, shutdowner fx.Shutdowner, log logger.Logger, cfg *config.Config,
	shell *ui.Shell, librarian maintenance.Librarian) {

	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			go func() {
				// Build the initial index before the first reload; this is a
				// no-op error while the library is not yet authorized.
				if err := librarian.Reindex(ctx); err != nil {
					log.Debug("Initial reindex skipped", "error", err)
				}

				if err := shell.Run(ctx); err != nil {
					log.Error("Shell exited with error", "error", err)
				}
				_ = shutdowner.Shutdown()
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Debug("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
