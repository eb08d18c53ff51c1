package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophfinance/internal/buildinfo"
	"github.com/dmitrijs2005/gophfinance/internal/client/cli"
	"github.com/dmitrijs2005/gophfinance/internal/client/config"
	"github.com/dmitrijs2005/gophfinance/internal/client/storage"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(cfg.LogLevel, os.Stderr)

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("session storage: %v", err)
	}
	defer store.Close()

	app, err := cli.NewApp(ctx, cfg, store, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
