// Package review implements the Review Acceptance Gate: it validates a
// submitted review, persists it subject to the duplicate window and the daily
// cap, and hands accepted reviews to the Points Ledger.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type reviewRepo interface {
	Create(ctx context.Context, rv *domain.Review) (*domain.Review, bool, error)
	ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]*domain.Review, int, error)
	CountForDay(ctx context.Context, identity domain.RaterIdentity, day time.Time) (int, error)
	DailyCap(ctx context.Context) (int, error)
}

type scanCounter interface {
	IncrementScan(ctx context.Context, codeID uuid.UUID, subjectID string, at time.Time) error
}

type pointsAwarder interface {
	Award(ctx context.Context, identity domain.RaterIdentity, reviewID uuid.UUID) (int, error)
}

// Service provides review submission operations.
type Service struct {
	reviews  reviewRepo
	scans    scanCounter
	ledger   pointsAwarder
	maxBatch int
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Review service. maxBatch bounds SubmitBatch.
func NewService(
	log *slog.Logger,
	reviews reviewRepo,
	scans scanCounter,
	ledger pointsAwarder,
	maxBatch int,
) *Service {
	return &Service{
		reviews:  reviews,
		scans:    scans,
		ledger:   ledger,
		maxBatch: maxBatch,
		now:      time.Now,
		log:      log.With("service", "review"),
	}
}
