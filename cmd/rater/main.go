// Command rater is the handheld client's core without its UI: it resolves the
// rater identity, submits reviews, buffers them offline and replays the
// buffer when the API is reachable again.
//
// Usage:
//
//	rater submit --subject=veh-1 --stars=5 [--code=abc123] [--tags=clean,friendly]
//	             [--rate=clean=5 --rate=driver=4] [--comment=...] [--photo=URL] [--surface=QUICK]
//	rater sync
//	rater queue [--clear]
//	rater whoami
//	rater balance
//	rater quota
//	rater version
//
// Settings come from CONFIG_PATH / environment (CLIENT_* variables); an
// optional .env file is loaded first. Command results go to stdout, logs to
// stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/scanrate-backend/internal/app"
	"github.com/heartmarshall/scanrate-backend/internal/config"
)

const usage = `usage: rater <command> [flags]

commands:
  submit    capture and send a review (queued when offline)
  sync      replay queued reviews
  queue     list queued reviews (--clear to discard them)
  whoami    print the rater identity
  balance   print the points balance
  quota     print today's review quota
  version   print the build version
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, args := os.Args[1], os.Args[2:]

	if cmd == "version" {
		fmt.Println(app.BuildVersion())
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, "rater")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rater, err := app.NewRater(cfg.Client, logger)
	if err != nil {
		log.Fatalf("start client: %v", err)
	}
	defer rater.Close()

	var runErr error
	switch cmd {
	case "submit":
		runErr = runSubmit(ctx, rater, args)
	case "sync":
		runErr = runSync(ctx, rater)
	case "queue":
		runErr = runQueue(ctx, rater, args)
	case "whoami":
		runErr = runWhoami(ctx, rater)
	case "balance":
		runErr = runBalance(ctx, rater)
	case "quota":
		runErr = runQuota(ctx, rater)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		rater.Close()
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, describe(runErr))
		rater.Close()
		os.Exit(1)
	}
}
