// Command points-config updates the number of points awarded per accepted
// rating and prints the settings the gate and ledger currently use. The daily
// review cap is not set here: the server writes REVIEW_DAILY_CAP on start.
//
// Usage:
//
//	points-config --points-per-rating=15
//	points-config            (prints the current settings)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/points"
	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/review"
	"github.com/heartmarshall/scanrate-backend/internal/app"
	"github.com/heartmarshall/scanrate-backend/internal/config"
)

func main() {
	perRating := flag.Int("points-per-rating", -1, "points awarded per accepted rating")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log, "points-config")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	pointsRepo := points.New(pool)
	reviewRepo := review.New(pool)

	if *perRating >= 0 {
		if err := pointsRepo.SetPointsPerRating(ctx, *perRating); err != nil {
			logger.Error("set points per rating", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("points per rating updated", slog.Int("points_per_rating", *perRating))
	}

	pc, err := pointsRepo.GetConfig(ctx)
	if err != nil {
		logger.Error("read points config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	limit, err := reviewRepo.DailyCap(ctx)
	if err != nil {
		logger.Error("read daily cap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("points_per_rating=%d daily_review_cap=%d\n", pc.PointsPerRating, limit)
}
