package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/atm/infra/initializer"
	"github.com/amirasaad/atm/pkg/app"
	"github.com/amirasaad/atm/pkg/config"
	atmsvc "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(ctx, cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	application := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(application)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		if _, err := application.ATM.Close(context.Background()); err != nil && !errors.Is(err, atmsvc.ErrNoTransactions) {
			logger.Error("Failed to close session", "error", err)
		}
		if err := fiberApp.Shutdown(); err != nil {
			logger.Error("Failed to shut down server", "error", err)
		}
	}()

	logger.Info("Starting server",
		"env", cfg.Env,
		"address", cfg.Server.Addr(),
		"url", cfg.Server.URL(),
	)
	return fiberApp.Listen(cfg.Server.Addr())
}
