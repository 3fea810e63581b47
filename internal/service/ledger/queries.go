package ledger

import (
	"context"
	"fmt"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// Balance returns the balance of identity. Identities that never earned
// points have a zero balance.
func (s *Service) Balance(ctx context.Context, identity string) (domain.PointsBalance, error) {
	id, err := domain.ParseRaterIdentity(identity)
	if err != nil {
		return domain.PointsBalance{}, err
	}

	b, err := s.points.GetBalance(ctx, id)
	if err != nil {
		return domain.PointsBalance{}, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

// Transactions returns a page of an identity's transactions, newest first,
// and the total count.
func (s *Service) Transactions(ctx context.Context, input TransactionsInput) ([]*domain.PointsTransaction, int, error) {
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}
	id, _ := domain.ParseRaterIdentity(input.Identity)

	filter := domain.TransactionFilter{Limit: input.Limit, Offset: input.Offset}
	if input.Type != "" {
		t := domain.TransactionType(input.Type)
		filter.Type = &t
	}

	txs, total, err := s.points.ListTransactions(ctx, id, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return txs, total, nil
}
