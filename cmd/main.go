package main

import (
	"context"
	"os"

	"github.com/Nico-ST/SvenSwipe/internal/app"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{})

	app := fx.New(
		fx.Logger(log),
		app.Module,
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for an interrupt signal or a shutdown requested by the shell
	<-app.Done()

	// Gracefully shutdown the application
	if err := app.Stop(context.Background()); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
