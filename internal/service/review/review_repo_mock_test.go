package review

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ reviewRepo = &reviewRepoMock{}

type reviewRepoMock struct {
	CreateFunc        func(ctx context.Context, rv *domain.Review) (*domain.Review, bool, error)
	ListBySubjectFunc func(ctx context.Context, subjectID string, limit int, offset int) ([]*domain.Review, int, error)
	CountForDayFunc   func(ctx context.Context, identity domain.RaterIdentity, day time.Time) (int, error)
	DailyCapFunc      func(ctx context.Context) (int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rv  *domain.Review
		}
		ListBySubject []struct {
			Ctx       context.Context
			SubjectID string
			Limit     int
			Offset    int
		}
		CountForDay []struct {
			Ctx      context.Context
			Identity domain.RaterIdentity
			Day      time.Time
		}
		DailyCap []struct {
			Ctx context.Context
		}
	}
	lockCreate        sync.RWMutex
	lockListBySubject sync.RWMutex
	lockCountForDay   sync.RWMutex
	lockDailyCap      sync.RWMutex
}

func (mock *reviewRepoMock) Create(ctx context.Context, rv *domain.Review) (*domain.Review, bool, error) {
	if mock.CreateFunc == nil {
		panic("reviewRepoMock.CreateFunc: method is nil but reviewRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rv  *domain.Review
	}{Ctx: ctx, Rv: rv}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rv)
}

func (mock *reviewRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rv  *domain.Review
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *reviewRepoMock) ListBySubject(ctx context.Context, subjectID string, limit int, offset int) ([]*domain.Review, int, error) {
	if mock.ListBySubjectFunc == nil {
		panic("reviewRepoMock.ListBySubjectFunc: method is nil but reviewRepo.ListBySubject was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID string
		Limit     int
		Offset    int
	}{Ctx: ctx, SubjectID: subjectID, Limit: limit, Offset: offset}
	mock.lockListBySubject.Lock()
	mock.calls.ListBySubject = append(mock.calls.ListBySubject, callInfo)
	mock.lockListBySubject.Unlock()
	return mock.ListBySubjectFunc(ctx, subjectID, limit, offset)
}

func (mock *reviewRepoMock) ListBySubjectCalls() []struct {
	Ctx       context.Context
	SubjectID string
	Limit     int
	Offset    int
} {
	mock.lockListBySubject.RLock()
	calls := mock.calls.ListBySubject
	mock.lockListBySubject.RUnlock()
	return calls
}

func (mock *reviewRepoMock) CountForDay(ctx context.Context, identity domain.RaterIdentity, day time.Time) (int, error) {
	if mock.CountForDayFunc == nil {
		panic("reviewRepoMock.CountForDayFunc: method is nil but reviewRepo.CountForDay was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity domain.RaterIdentity
		Day      time.Time
	}{Ctx: ctx, Identity: identity, Day: day}
	mock.lockCountForDay.Lock()
	mock.calls.CountForDay = append(mock.calls.CountForDay, callInfo)
	mock.lockCountForDay.Unlock()
	return mock.CountForDayFunc(ctx, identity, day)
}

func (mock *reviewRepoMock) CountForDayCalls() []struct {
	Ctx      context.Context
	Identity domain.RaterIdentity
	Day      time.Time
} {
	mock.lockCountForDay.RLock()
	calls := mock.calls.CountForDay
	mock.lockCountForDay.RUnlock()
	return calls
}

func (mock *reviewRepoMock) DailyCap(ctx context.Context) (int, error) {
	if mock.DailyCapFunc == nil {
		panic("reviewRepoMock.DailyCapFunc: method is nil but reviewRepo.DailyCap was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockDailyCap.Lock()
	mock.calls.DailyCap = append(mock.calls.DailyCap, callInfo)
	mock.lockDailyCap.Unlock()
	return mock.DailyCapFunc(ctx)
}

func (mock *reviewRepoMock) DailyCapCalls() []struct {
	Ctx context.Context
} {
	mock.lockDailyCap.RLock()
	calls := mock.calls.DailyCap
	mock.lockDailyCap.RUnlock()
	return calls
}
