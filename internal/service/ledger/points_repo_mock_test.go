package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ pointsRepo = &pointsRepoMock{}

type pointsRepoMock struct {
	GetConfigFunc         func(ctx context.Context) (domain.PointsConfig, error)
	GetBalanceFunc        func(ctx context.Context, identity domain.RaterIdentity) (domain.PointsBalance, error)
	CreditFunc            func(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error)
	DebitFunc             func(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error)
	InsertTransactionFunc func(ctx context.Context, tx *domain.PointsTransaction) (bool, error)
	ListTransactionsFunc  func(ctx context.Context, identity domain.RaterIdentity, f domain.TransactionFilter) ([]*domain.PointsTransaction, int, error)

	calls struct {
		GetConfig []struct {
			Ctx context.Context
		}
		GetBalance []struct {
			Ctx      context.Context
			Identity domain.RaterIdentity
		}
		Credit []struct {
			Ctx      context.Context
			Identity domain.RaterIdentity
			Amount   int
			Now      time.Time
		}
		Debit []struct {
			Ctx      context.Context
			Identity domain.RaterIdentity
			Amount   int
			Now      time.Time
		}
		InsertTransaction []struct {
			Ctx context.Context
			Tx  *domain.PointsTransaction
		}
		ListTransactions []struct {
			Ctx      context.Context
			Identity domain.RaterIdentity
			F        domain.TransactionFilter
		}
	}
	lockGetConfig         sync.RWMutex
	lockGetBalance        sync.RWMutex
	lockCredit            sync.RWMutex
	lockDebit             sync.RWMutex
	lockInsertTransaction sync.RWMutex
	lockListTransactions  sync.RWMutex
}

func (mock *pointsRepoMock) GetConfig(ctx context.Context) (domain.PointsConfig, error) {
	if mock.GetConfigFunc == nil {
		panic("pointsRepoMock.GetConfigFunc: method is nil but pointsRepo.GetConfig was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockGetConfig.Lock()
	mock.calls.GetConfig = append(mock.calls.GetConfig, callInfo)
	mock.lockGetConfig.Unlock()
	return mock.GetConfigFunc(ctx)
}

func (mock *pointsRepoMock) GetConfigCalls() []struct {
	Ctx context.Context
} {
	mock.lockGetConfig.RLock()
	calls := mock.calls.GetConfig
	mock.lockGetConfig.RUnlock()
	return calls
}

func (mock *pointsRepoMock) GetBalance(ctx context.Context, identity domain.RaterIdentity) (domain.PointsBalance, error) {
	if mock.GetBalanceFunc == nil {
		panic("pointsRepoMock.GetBalanceFunc: method is nil but pointsRepo.GetBalance was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity domain.RaterIdentity
	}{Ctx: ctx, Identity: identity}
	mock.lockGetBalance.Lock()
	mock.calls.GetBalance = append(mock.calls.GetBalance, callInfo)
	mock.lockGetBalance.Unlock()
	return mock.GetBalanceFunc(ctx, identity)
}

func (mock *pointsRepoMock) GetBalanceCalls() []struct {
	Ctx      context.Context
	Identity domain.RaterIdentity
} {
	mock.lockGetBalance.RLock()
	calls := mock.calls.GetBalance
	mock.lockGetBalance.RUnlock()
	return calls
}

func (mock *pointsRepoMock) Credit(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error) {
	if mock.CreditFunc == nil {
		panic("pointsRepoMock.CreditFunc: method is nil but pointsRepo.Credit was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity domain.RaterIdentity
		Amount   int
		Now      time.Time
	}{Ctx: ctx, Identity: identity, Amount: amount, Now: now}
	mock.lockCredit.Lock()
	mock.calls.Credit = append(mock.calls.Credit, callInfo)
	mock.lockCredit.Unlock()
	return mock.CreditFunc(ctx, identity, amount, now)
}

func (mock *pointsRepoMock) CreditCalls() []struct {
	Ctx      context.Context
	Identity domain.RaterIdentity
	Amount   int
	Now      time.Time
} {
	mock.lockCredit.RLock()
	calls := mock.calls.Credit
	mock.lockCredit.RUnlock()
	return calls
}

func (mock *pointsRepoMock) Debit(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error) {
	if mock.DebitFunc == nil {
		panic("pointsRepoMock.DebitFunc: method is nil but pointsRepo.Debit was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity domain.RaterIdentity
		Amount   int
		Now      time.Time
	}{Ctx: ctx, Identity: identity, Amount: amount, Now: now}
	mock.lockDebit.Lock()
	mock.calls.Debit = append(mock.calls.Debit, callInfo)
	mock.lockDebit.Unlock()
	return mock.DebitFunc(ctx, identity, amount, now)
}

func (mock *pointsRepoMock) DebitCalls() []struct {
	Ctx      context.Context
	Identity domain.RaterIdentity
	Amount   int
	Now      time.Time
} {
	mock.lockDebit.RLock()
	calls := mock.calls.Debit
	mock.lockDebit.RUnlock()
	return calls
}

func (mock *pointsRepoMock) InsertTransaction(ctx context.Context, tx *domain.PointsTransaction) (bool, error) {
	if mock.InsertTransactionFunc == nil {
		panic("pointsRepoMock.InsertTransactionFunc: method is nil but pointsRepo.InsertTransaction was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Tx  *domain.PointsTransaction
	}{Ctx: ctx, Tx: tx}
	mock.lockInsertTransaction.Lock()
	mock.calls.InsertTransaction = append(mock.calls.InsertTransaction, callInfo)
	mock.lockInsertTransaction.Unlock()
	return mock.InsertTransactionFunc(ctx, tx)
}

func (mock *pointsRepoMock) InsertTransactionCalls() []struct {
	Ctx context.Context
	Tx  *domain.PointsTransaction
} {
	mock.lockInsertTransaction.RLock()
	calls := mock.calls.InsertTransaction
	mock.lockInsertTransaction.RUnlock()
	return calls
}

func (mock *pointsRepoMock) ListTransactions(ctx context.Context, identity domain.RaterIdentity, f domain.TransactionFilter) ([]*domain.PointsTransaction, int, error) {
	if mock.ListTransactionsFunc == nil {
		panic("pointsRepoMock.ListTransactionsFunc: method is nil but pointsRepo.ListTransactions was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity domain.RaterIdentity
		F        domain.TransactionFilter
	}{Ctx: ctx, Identity: identity, F: f}
	mock.lockListTransactions.Lock()
	mock.calls.ListTransactions = append(mock.calls.ListTransactions, callInfo)
	mock.lockListTransactions.Unlock()
	return mock.ListTransactionsFunc(ctx, identity, f)
}

func (mock *pointsRepoMock) ListTransactionsCalls() []struct {
	Ctx      context.Context
	Identity domain.RaterIdentity
	F        domain.TransactionFilter
} {
	mock.lockListTransactions.RLock()
	calls := mock.calls.ListTransactions
	mock.lockListTransactions.RUnlock()
	return calls
}
