// Package ledger implements the Points Ledger: it turns accepted reviews into
// loyalty points and records every balance movement.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

type pointsRepo interface {
	GetConfig(ctx context.Context) (domain.PointsConfig, error)
	GetBalance(ctx context.Context, identity domain.RaterIdentity) (domain.PointsBalance, error)
	Credit(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error)
	Debit(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error)
	InsertTransaction(ctx context.Context, tx *domain.PointsTransaction) (bool, error)
	ListTransactions(ctx context.Context, identity domain.RaterIdentity, f domain.TransactionFilter) ([]*domain.PointsTransaction, int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides points operations.
type Service struct {
	points   pointsRepo
	tx       txManager
	maxSpend int
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Ledger service. maxSpend caps a single spend.
func NewService(
	log *slog.Logger,
	points pointsRepo,
	tx txManager,
	maxSpend int,
) *Service {
	return &Service{
		points:   points,
		tx:       tx,
		maxSpend: maxSpend,
		now:      time.Now,
		log:      log.With("service", "ledger"),
	}
}
