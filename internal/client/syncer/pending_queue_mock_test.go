package syncer

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ pendingQueue = &pendingQueueMock{}

type pendingQueueMock struct {
	DrainFunc func(ctx context.Context) ([]domain.PendingReview, error)
	AckFunc   func(ctx context.Context, ids ...uuid.UUID) error

	calls struct {
		Drain []struct {
			Ctx context.Context
		}
		Ack []struct {
			Ctx context.Context
			Ids []uuid.UUID
		}
	}
	lockDrain sync.RWMutex
	lockAck   sync.RWMutex
}

func (mock *pendingQueueMock) Drain(ctx context.Context) ([]domain.PendingReview, error) {
	if mock.DrainFunc == nil {
		panic("pendingQueueMock.DrainFunc: method is nil but pendingQueue.Drain was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockDrain.Lock()
	mock.calls.Drain = append(mock.calls.Drain, callInfo)
	mock.lockDrain.Unlock()
	return mock.DrainFunc(ctx)
}

func (mock *pendingQueueMock) DrainCalls() []struct {
	Ctx context.Context
} {
	mock.lockDrain.RLock()
	calls := mock.calls.Drain
	mock.lockDrain.RUnlock()
	return calls
}

func (mock *pendingQueueMock) Ack(ctx context.Context, ids ...uuid.UUID) error {
	if mock.AckFunc == nil {
		panic("pendingQueueMock.AckFunc: method is nil but pendingQueue.Ack was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ids []uuid.UUID
	}{Ctx: ctx, Ids: ids}
	mock.lockAck.Lock()
	mock.calls.Ack = append(mock.calls.Ack, callInfo)
	mock.lockAck.Unlock()
	return mock.AckFunc(ctx, ids...)
}

func (mock *pendingQueueMock) AckCalls() []struct {
	Ctx context.Context
	Ids []uuid.UUID
} {
	mock.lockAck.RLock()
	calls := mock.calls.Ack
	mock.lockAck.RUnlock()
	return calls
}
