package devbackend

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg    *Config
	logger logging.Logger
	srv    *Server
}

func NewApp(cfg *Config) (*App, error) {
	logger := logging.New(cfg.LogLevel, os.Stdout)

	srv := New(Options{
		Secret:   []byte(cfg.Secret),
		TokenTTL: cfg.TokenTTL,
		Logger:   logger,
	})
	if cfg.AdminEmail != "" {
		if _, err := srv.SeedUser(cfg.AdminEmail, cfg.AdminPassword, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}
	return &App{cfg: cfg, logger: logger, srv: srv}, nil
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "starting dev backend", "addr", app.cfg.Addr)

	errc := make(chan error, 1)
	go func() { errc <- app.srv.Start(app.cfg.Addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errc
}
