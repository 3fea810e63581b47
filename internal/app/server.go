package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/scanrate-backend/internal/adapter/postgres"
	pointsrepo "github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/points"
	reviewrepo "github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/review"
	subjectrepo "github.com/heartmarshall/scanrate-backend/internal/adapter/postgres/subject"
	"github.com/heartmarshall/scanrate-backend/internal/auth"
	"github.com/heartmarshall/scanrate-backend/internal/config"
	"github.com/heartmarshall/scanrate-backend/internal/service/catalog"
	"github.com/heartmarshall/scanrate-backend/internal/service/ledger"
	"github.com/heartmarshall/scanrate-backend/internal/service/review"
	"github.com/heartmarshall/scanrate-backend/internal/transport/middleware"
	"github.com/heartmarshall/scanrate-backend/internal/transport/rest"
)

const rateLimitCleanup = time.Minute

// RunServer is the API server entry point. It loads configuration, prepares
// the database and serves HTTP until ctx is cancelled.
func RunServer(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, "server")
	logger.Info("starting api server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := PrepareDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	handler, stop := NewHandler(cfg, pool, logger)
	defer stop()

	return Serve(ctx, cfg.Server, handler, logger)
}

// PrepareDatabase connects to Postgres, applies migrations when enabled and
// seeds the configuration rows the gate and ledger read.
func PrepareDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return nil, err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	// The configured cap is authoritative at startup; points per rating is
	// only seeded so operator changes survive restarts.
	if err := reviewrepo.New(pool).SetDailyCap(ctx, cfg.Review.DailyCap); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed daily cap: %w", err)
	}
	if err := pointsrepo.New(pool).EnsurePointsPerRating(ctx, cfg.Points.DefaultPerRating); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed points config: %w", err)
	}

	logger.Info("database ready",
		slog.Int("daily_review_cap", cfg.Review.DailyCap),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate),
	)
	return pool, nil
}

// NewHandler wires repositories, services and transport into the HTTP
// handler. The returned stop func releases background resources.
func NewHandler(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (http.Handler, func()) {
	reviews := reviewrepo.New(pool)
	points := pointsrepo.New(pool)
	subjects := subjectrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	ledgerSvc := ledger.NewService(logger, points, txm, cfg.Points.MaxSpend)
	reviewSvc := review.NewService(logger, reviews, subjects, ledgerSvc, cfg.Review.MaxBatchItems)
	catalogSvc := catalog.NewService(logger, subjects)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	health := rest.NewHealthHandler(BuildVersion(),
		rest.HealthCheck{Name: "database", Probe: pool.Ping},
		rest.HealthCheck{Name: "points_config", Probe: func(ctx context.Context) error {
			_, err := points.GetConfig(ctx)
			return err
		}},
	)

	api := []rest.Middleware{middleware.Auth(jwtManager)}
	stop := func() {}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst, rateLimitCleanup)
		api = append(api, limiter.Limit)
		stop = limiter.Stop
	}

	router := rest.NewRouter(rest.RouterDeps{
		Health:  health,
		Reviews: rest.NewReviewHandler(reviewSvc, logger),
		Catalog: rest.NewCatalogHandler(catalogSvc, logger),
		Points:  rest.NewPointsHandler(ledgerSvc, logger),
		Global: []rest.Middleware{
			middleware.RequestID(),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
			middleware.Logger(logger),
		},
		API: api,
	})

	return router, stop
}

// Serve runs an HTTP server until ctx is cancelled, then shuts it down
// gracefully within cfg.ShutdownTimeout.
func Serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		shutdown <- srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server has started", slog.String("addr", srv.Addr))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	if err := <-shutdown; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server has stopped", slog.String("addr", srv.Addr))
	return nil
}
