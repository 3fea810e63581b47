package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/scanrate-backend/internal/client/api"
	"github.com/heartmarshall/scanrate-backend/internal/client/identity"
	"github.com/heartmarshall/scanrate-backend/internal/client/localstore"
	"github.com/heartmarshall/scanrate-backend/internal/client/queue"
	"github.com/heartmarshall/scanrate-backend/internal/client/submitter"
	"github.com/heartmarshall/scanrate-backend/internal/client/syncer"
	"github.com/heartmarshall/scanrate-backend/internal/config"
)

// Rater is the assembled handheld client: identity, offline queue, API
// client, submitter and sync reconciler sharing one local store.
type Rater struct {
	Store     *localstore.Store
	Identity  *identity.Resolver
	Queue     *queue.Queue
	API       *api.Client
	Submitter *submitter.Submitter
	Syncer    *syncer.Syncer

	// Durable is false when the data directory could not be opened and the
	// client runs on an in-memory store for this session.
	Durable bool

	log *slog.Logger
}

// NewRater wires the client components from cfg. A data directory that cannot
// be opened degrades to session-only storage instead of failing.
func NewRater(cfg config.ClientConfig, logger *slog.Logger) (*Rater, error) {
	r := &Rater{Durable: true, log: logger}

	store, err := localstore.Open(cfg.DataDir, logger)
	if err != nil {
		logger.Warn("local store unavailable, queued reviews will not survive restart",
			slog.String("dir", cfg.DataDir),
			slog.String("error", err.Error()),
		)
		if store, err = localstore.OpenInMemory(logger); err != nil {
			return nil, fmt.Errorf("open in-memory store: %w", err)
		}
		r.Durable = false
	}
	r.Store = store

	var idOpts []identity.Option
	var apiOpts []api.Option
	if cfg.AccessToken != "" {
		userID, err := identity.UserFromAccessToken(cfg.AccessToken)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("access token: %w", err)
		}
		idOpts = append(idOpts, identity.WithUser(userID))
		apiOpts = append(apiOpts, api.WithAccessToken(cfg.AccessToken))
	}

	if r.Durable {
		r.Identity = identity.NewResolver(store, logger, idOpts...)
	} else {
		r.Identity = identity.NewResolver(nil, logger, idOpts...)
	}

	r.Queue = queue.New(store, logger)
	r.API = api.New(cfg.APIBaseURL, cfg.RequestTimeout, logger, apiOpts...)
	r.Submitter = submitter.New(r.Identity, r.API, r.Queue, logger)
	r.Syncer = syncer.New(r.API, r.Queue, syncer.DefaultBatchSize, logger)

	return r, nil
}

// Start replays whatever the previous session left queued.
func (r *Rater) Start(ctx context.Context) (syncer.Result, error) {
	return r.Syncer.Run(ctx)
}

// Close releases the local store.
func (r *Rater) Close() error {
	return r.Store.Close()
}
