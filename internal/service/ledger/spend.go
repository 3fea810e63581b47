package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/pkg/ctxutil"
)

// Spend debits points from the caller's own balance. Only an authenticated
// user may spend, and only from the identity bound to their account.
// A balance too small for the request yields *domain.InsufficientPointsError.
func (s *Service) Spend(ctx context.Context, input SpendInput) (domain.PointsBalance, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.PointsBalance{}, domain.ErrUnauthorized
	}

	if err := input.Validate(s.maxSpend); err != nil {
		return domain.PointsBalance{}, err
	}

	identity, _ := domain.ParseRaterIdentity(input.Identity)
	if identity != domain.UserIdentity(userID) {
		return domain.PointsBalance{}, domain.ErrForbidden
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = "points redeemed"
	}

	var balance domain.PointsBalance
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := s.now().UTC()

		b, err := s.points.Debit(ctx, identity, input.Amount, now)
		if err != nil {
			return err
		}

		if _, err := s.points.InsertTransaction(ctx, &domain.PointsTransaction{
			ID:           uuid.New(),
			Identity:     identity,
			PointsAmount: -input.Amount,
			Type:         domain.TransactionSpend,
			Description:  description,
			CreatedAt:    now,
		}); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		balance = b
		return nil
	})
	if err != nil {
		return domain.PointsBalance{}, err
	}

	s.log.InfoContext(ctx, "points spent",
		slog.String("identity", identity.String()),
		slog.Int("points", input.Amount),
		slog.Int("available", balance.AvailablePoints),
	)

	return balance, nil
}
