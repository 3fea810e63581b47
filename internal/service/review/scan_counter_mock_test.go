package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ scanCounter = &scanCounterMock{}

type scanCounterMock struct {
	IncrementScanFunc func(ctx context.Context, codeID uuid.UUID, subjectID string, at time.Time) error

	calls struct {
		IncrementScan []struct {
			Ctx       context.Context
			CodeID    uuid.UUID
			SubjectID string
			At        time.Time
		}
	}
	lockIncrementScan sync.RWMutex
}

func (mock *scanCounterMock) IncrementScan(ctx context.Context, codeID uuid.UUID, subjectID string, at time.Time) error {
	if mock.IncrementScanFunc == nil {
		panic("scanCounterMock.IncrementScanFunc: method is nil but scanCounter.IncrementScan was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		CodeID    uuid.UUID
		SubjectID string
		At        time.Time
	}{Ctx: ctx, CodeID: codeID, SubjectID: subjectID, At: at}
	mock.lockIncrementScan.Lock()
	mock.calls.IncrementScan = append(mock.calls.IncrementScan, callInfo)
	mock.lockIncrementScan.Unlock()
	return mock.IncrementScanFunc(ctx, codeID, subjectID, at)
}

func (mock *scanCounterMock) IncrementScanCalls() []struct {
	Ctx       context.Context
	CodeID    uuid.UUID
	SubjectID string
	At        time.Time
} {
	mock.lockIncrementScan.RLock()
	calls := mock.calls.IncrementScan
	mock.lockIncrementScan.RUnlock()
	return calls
}
