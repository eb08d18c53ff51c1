package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophfinance/internal/devbackend"
)

func main() {
	cfg, err := devbackend.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := devbackend.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
