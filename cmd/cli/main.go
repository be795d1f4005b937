package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/atm/infra/initializer"
	"github.com/amirasaad/atm/pkg/app"
	"github.com/amirasaad/atm/pkg/config"
	log "github.com/charmbracelet/log"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// keep config loading quiet; the shell owns stdout
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	cfg.Log.Level = max(cfg.Log.Level, int(log.WarnLevel))

	ctx := context.Background()
	deps, err := initializer.InitializeDependencies(ctx, cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	application := app.New(deps, cfg)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	return newShell(application.ATM, os.Stdin, os.Stdout, interactive).run(ctx)
}
