package catalog

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ subjectRepo = &subjectRepoMock{}

type subjectRepoMock struct {
	GetSubjectFunc    func(ctx context.Context, id string) (*domain.Subject, error)
	CreateSubjectFunc func(ctx context.Context, s *domain.Subject) (*domain.Subject, error)
	CreateCodeFunc    func(ctx context.Context, c *domain.ScanCode) (*domain.ScanCode, error)
	GetTargetFunc     func(ctx context.Context, code string) (*domain.ScanTarget, error)

	calls struct {
		GetSubject []struct {
			Ctx context.Context
			Id  string
		}
		CreateSubject []struct {
			Ctx context.Context
			S   *domain.Subject
		}
		CreateCode []struct {
			Ctx context.Context
			C   *domain.ScanCode
		}
		GetTarget []struct {
			Ctx  context.Context
			Code string
		}
	}
	lockGetSubject    sync.RWMutex
	lockCreateSubject sync.RWMutex
	lockCreateCode    sync.RWMutex
	lockGetTarget     sync.RWMutex
}

func (mock *subjectRepoMock) GetSubject(ctx context.Context, id string) (*domain.Subject, error) {
	if mock.GetSubjectFunc == nil {
		panic("subjectRepoMock.GetSubjectFunc: method is nil but subjectRepo.GetSubject was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockGetSubject.Lock()
	mock.calls.GetSubject = append(mock.calls.GetSubject, callInfo)
	mock.lockGetSubject.Unlock()
	return mock.GetSubjectFunc(ctx, id)
}

func (mock *subjectRepoMock) GetSubjectCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockGetSubject.RLock()
	calls := mock.calls.GetSubject
	mock.lockGetSubject.RUnlock()
	return calls
}

func (mock *subjectRepoMock) CreateSubject(ctx context.Context, s *domain.Subject) (*domain.Subject, error) {
	if mock.CreateSubjectFunc == nil {
		panic("subjectRepoMock.CreateSubjectFunc: method is nil but subjectRepo.CreateSubject was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Subject
	}{Ctx: ctx, S: s}
	mock.lockCreateSubject.Lock()
	mock.calls.CreateSubject = append(mock.calls.CreateSubject, callInfo)
	mock.lockCreateSubject.Unlock()
	return mock.CreateSubjectFunc(ctx, s)
}

func (mock *subjectRepoMock) CreateSubjectCalls() []struct {
	Ctx context.Context
	S   *domain.Subject
} {
	mock.lockCreateSubject.RLock()
	calls := mock.calls.CreateSubject
	mock.lockCreateSubject.RUnlock()
	return calls
}

func (mock *subjectRepoMock) CreateCode(ctx context.Context, c *domain.ScanCode) (*domain.ScanCode, error) {
	if mock.CreateCodeFunc == nil {
		panic("subjectRepoMock.CreateCodeFunc: method is nil but subjectRepo.CreateCode was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.ScanCode
	}{Ctx: ctx, C: c}
	mock.lockCreateCode.Lock()
	mock.calls.CreateCode = append(mock.calls.CreateCode, callInfo)
	mock.lockCreateCode.Unlock()
	return mock.CreateCodeFunc(ctx, c)
}

func (mock *subjectRepoMock) CreateCodeCalls() []struct {
	Ctx context.Context
	C   *domain.ScanCode
} {
	mock.lockCreateCode.RLock()
	calls := mock.calls.CreateCode
	mock.lockCreateCode.RUnlock()
	return calls
}

func (mock *subjectRepoMock) GetTarget(ctx context.Context, code string) (*domain.ScanTarget, error) {
	if mock.GetTargetFunc == nil {
		panic("subjectRepoMock.GetTargetFunc: method is nil but subjectRepo.GetTarget was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockGetTarget.Lock()
	mock.calls.GetTarget = append(mock.calls.GetTarget, callInfo)
	mock.lockGetTarget.Unlock()
	return mock.GetTargetFunc(ctx, code)
}

func (mock *subjectRepoMock) GetTargetCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGetTarget.RLock()
	calls := mock.calls.GetTarget
	mock.lockGetTarget.RUnlock()
	return calls
}
