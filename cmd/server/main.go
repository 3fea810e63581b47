// Command server runs the scan-to-rate review API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and the
// environment; an optional .env file is loaded first.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/scanrate-backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunServer(ctx); err != nil {
		log.Printf("server: %v", err)
		os.Exit(1)
	}
}
