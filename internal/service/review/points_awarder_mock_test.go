package review

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ pointsAwarder = &pointsAwarderMock{}

type pointsAwarderMock struct {
	AwardFunc func(ctx context.Context, identity domain.RaterIdentity, reviewID uuid.UUID) (int, error)

	calls struct {
		Award []struct {
			Ctx      context.Context
			Identity domain.RaterIdentity
			ReviewID uuid.UUID
		}
	}
	lockAward sync.RWMutex
}

func (mock *pointsAwarderMock) Award(ctx context.Context, identity domain.RaterIdentity, reviewID uuid.UUID) (int, error) {
	if mock.AwardFunc == nil {
		panic("pointsAwarderMock.AwardFunc: method is nil but pointsAwarder.Award was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity domain.RaterIdentity
		ReviewID uuid.UUID
	}{Ctx: ctx, Identity: identity, ReviewID: reviewID}
	mock.lockAward.Lock()
	mock.calls.Award = append(mock.calls.Award, callInfo)
	mock.lockAward.Unlock()
	return mock.AwardFunc(ctx, identity, reviewID)
}

func (mock *pointsAwarderMock) AwardCalls() []struct {
	Ctx      context.Context
	Identity domain.RaterIdentity
	ReviewID uuid.UUID
} {
	mock.lockAward.RLock()
	calls := mock.calls.Award
	mock.lockAward.RUnlock()
	return calls
}
