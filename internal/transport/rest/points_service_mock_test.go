package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/service/ledger"
)

var _ pointsService = &pointsServiceMock{}

type pointsServiceMock struct {
	BalanceFunc      func(ctx context.Context, identity string) (domain.PointsBalance, error)
	TransactionsFunc func(ctx context.Context, input ledger.TransactionsInput) ([]*domain.PointsTransaction, int, error)
	SpendFunc        func(ctx context.Context, input ledger.SpendInput) (domain.PointsBalance, error)

	calls struct {
		Balance []struct {
			Ctx      context.Context
			Identity string
		}
		Transactions []struct {
			Ctx   context.Context
			Input ledger.TransactionsInput
		}
		Spend []struct {
			Ctx   context.Context
			Input ledger.SpendInput
		}
	}
	lockBalance      sync.RWMutex
	lockTransactions sync.RWMutex
	lockSpend        sync.RWMutex
}

func (mock *pointsServiceMock) Balance(ctx context.Context, identity string) (domain.PointsBalance, error) {
	if mock.BalanceFunc == nil {
		panic("pointsServiceMock.BalanceFunc: method is nil but pointsService.Balance was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
	}{Ctx: ctx, Identity: identity}
	mock.lockBalance.Lock()
	mock.calls.Balance = append(mock.calls.Balance, callInfo)
	mock.lockBalance.Unlock()
	return mock.BalanceFunc(ctx, identity)
}

func (mock *pointsServiceMock) BalanceCalls() []struct {
	Ctx      context.Context
	Identity string
} {
	mock.lockBalance.RLock()
	calls := mock.calls.Balance
	mock.lockBalance.RUnlock()
	return calls
}

func (mock *pointsServiceMock) Transactions(ctx context.Context, input ledger.TransactionsInput) ([]*domain.PointsTransaction, int, error) {
	if mock.TransactionsFunc == nil {
		panic("pointsServiceMock.TransactionsFunc: method is nil but pointsService.Transactions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ledger.TransactionsInput
	}{Ctx: ctx, Input: input}
	mock.lockTransactions.Lock()
	mock.calls.Transactions = append(mock.calls.Transactions, callInfo)
	mock.lockTransactions.Unlock()
	return mock.TransactionsFunc(ctx, input)
}

func (mock *pointsServiceMock) TransactionsCalls() []struct {
	Ctx   context.Context
	Input ledger.TransactionsInput
} {
	mock.lockTransactions.RLock()
	calls := mock.calls.Transactions
	mock.lockTransactions.RUnlock()
	return calls
}

func (mock *pointsServiceMock) Spend(ctx context.Context, input ledger.SpendInput) (domain.PointsBalance, error) {
	if mock.SpendFunc == nil {
		panic("pointsServiceMock.SpendFunc: method is nil but pointsService.Spend was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input ledger.SpendInput
	}{Ctx: ctx, Input: input}
	mock.lockSpend.Lock()
	mock.calls.Spend = append(mock.calls.Spend, callInfo)
	mock.lockSpend.Unlock()
	return mock.SpendFunc(ctx, input)
}

func (mock *pointsServiceMock) SpendCalls() []struct {
	Ctx   context.Context
	Input ledger.SpendInput
} {
	mock.lockSpend.RLock()
	calls := mock.calls.Spend
	mock.lockSpend.RUnlock()
	return calls
}
