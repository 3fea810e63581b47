// Package identity resolves the rater identity a device submits reviews
// under.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// TokenKey is the local store key of the anonymous device token.
const TokenKey = "identity/anonymous_token"

type tokenStore interface {
	Get(key string, dest any) error
	Set(key string, value any) error
}

// Resolver produces the identity of this device. It is safe for concurrent
// use; the anonymous token is resolved once and then served from memory.
type Resolver struct {
	store     tokenStore
	user      *uuid.UUID
	newRandom func() (string, error)
	now       func() time.Time
	log       *slog.Logger

	mu        sync.Mutex
	cached    domain.RaterIdentity
	ephemeral bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithUser makes the resolver return an authenticated user id.
func WithUser(userID uuid.UUID) Option {
	return func(r *Resolver) { r.user = &userID }
}

// NewResolver creates a Resolver. store may be nil when durable storage is
// unavailable; tokens are then kept for the session only.
func NewResolver(store tokenStore, log *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		store:     store,
		newRandom: func() (string, error) { return gonanoid.New() },
		now:       time.Now,
		log:       log.With("component", "identity"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the authenticated user id if one is configured, otherwise
// the device's anonymous token, generating and persisting it on first use.
func (r *Resolver) Resolve(ctx context.Context) (domain.RaterIdentity, error) {
	if r.user != nil {
		return domain.UserIdentity(*r.user), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != "" {
		return r.cached, nil
	}

	stored, ok, loadErr := r.load(ctx)
	if ok {
		r.cached = stored
		return stored, nil
	}

	random, err := r.newRandom()
	if err != nil {
		return "", fmt.Errorf("generate anonymous token: %w", err)
	}
	token := domain.NewAnonymousIdentity(random, r.now())

	switch {
	case r.store == nil:
		r.degrade(ctx, errors.New("no local store"))
	case loadErr != nil:
		// The stored token may still be valid; never write over it.
		r.degrade(ctx, loadErr)
	default:
		if err := r.store.Set(TokenKey, token); err != nil {
			r.degrade(ctx, err)
		} else {
			r.log.InfoContext(ctx, "anonymous identity created", slog.String("identity", token.String()))
		}
	}

	r.cached = token
	return token, nil
}

// Ephemeral reports whether the current token lives only in memory.
func (r *Resolver) Ephemeral() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ephemeral
}

// load returns a valid stored token. A malformed stored token is ignored:
// nothing valid can have been submitted under it. A read failure is returned
// so the caller does not replace a token it could not see.
func (r *Resolver) load(ctx context.Context) (domain.RaterIdentity, bool, error) {
	if r.store == nil {
		return "", false, nil
	}

	var stored string
	err := r.store.Get(TokenKey, &stored)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read anonymous identity: %w", err)
	}

	id, err := domain.ParseRaterIdentity(stored)
	if err != nil || id.Kind() != domain.IdentityAnonymous {
		r.log.WarnContext(ctx, "discarding malformed stored identity", slog.String("stored", stored))
		return "", false, nil
	}
	return id, true, nil
}

func (r *Resolver) degrade(ctx context.Context, cause error) {
	r.ephemeral = true
	r.log.WarnContext(ctx, "local storage unavailable, using session-only identity",
		slog.String("error", cause.Error()),
	)
}

// UserFromAccessToken extracts the user id from an access token without
// verifying it. The server verifies the token; the client only needs to know
// which identity it will be credited as.
func UserFromAccessToken(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return uuid.Nil, fmt.Errorf("parse access token: %w", err)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("access token subject: %w", err)
	}
	return id, nil
}
