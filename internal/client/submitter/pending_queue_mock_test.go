package submitter

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ pendingQueue = &pendingQueueMock{}

type pendingQueueMock struct {
	EnqueueFunc func(ctx context.Context, draft domain.ReviewDraft) error

	calls struct {
		Enqueue []struct {
			Ctx   context.Context
			Draft domain.ReviewDraft
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *pendingQueueMock) Enqueue(ctx context.Context, draft domain.ReviewDraft) error {
	if mock.EnqueueFunc == nil {
		panic("pendingQueueMock.EnqueueFunc: method is nil but pendingQueue.Enqueue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Draft domain.ReviewDraft
	}{Ctx: ctx, Draft: draft}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, draft)
}

func (mock *pendingQueueMock) EnqueueCalls() []struct {
	Ctx   context.Context
	Draft domain.ReviewDraft
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
