package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// Award credits the configured points_per_rating to identity for an accepted
// review and records an earn_rating transaction. The writes share one
// transaction and the transaction insert is the idempotence guard: a second
// award for the same review writes nothing and returns 0.
//
// Every failure is returned as *domain.LedgerError.
func (s *Service) Award(ctx context.Context, identity domain.RaterIdentity, reviewID uuid.UUID) (int, error) {
	var awarded int

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		cfg, err := s.points.GetConfig(ctx)
		if err != nil {
			return fmt.Errorf("get config: %w", err)
		}
		if cfg.PointsPerRating <= 0 {
			return nil
		}

		now := s.now().UTC()
		inserted, err := s.points.InsertTransaction(ctx, &domain.PointsTransaction{
			ID:           uuid.New(),
			Identity:     identity,
			PointsAmount: cfg.PointsPerRating,
			Type:         domain.TransactionEarnRating,
			ReviewRef:    &reviewID,
			Description:  "rating reward",
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		if !inserted {
			return nil
		}

		if _, err := s.points.Credit(ctx, identity, cfg.PointsPerRating, now); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		awarded = cfg.PointsPerRating
		return nil
	})
	if err != nil {
		return 0, &domain.LedgerError{ReviewID: reviewID.String(), Err: err}
	}

	if awarded > 0 {
		s.log.InfoContext(ctx, "points awarded",
			slog.String("identity", identity.String()),
			slog.String("review_id", reviewID.String()),
			slog.Int("points", awarded),
		)
	} else {
		s.log.DebugContext(ctx, "award skipped",
			slog.String("identity", identity.String()),
			slog.String("review_id", reviewID.String()),
		)
	}

	return awarded, nil
}
