package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/service/catalog"
)

var _ catalogService = &catalogServiceMock{}

type catalogServiceMock struct {
	ResolveCodeFunc     func(ctx context.Context, code string) (*domain.ScanTarget, error)
	RegisterSubjectFunc func(ctx context.Context, input catalog.RegisterSubjectInput) (*domain.Subject, error)
	IssueCodeFunc       func(ctx context.Context, subjectID string) (*domain.ScanCode, error)

	calls struct {
		ResolveCode []struct {
			Ctx  context.Context
			Code string
		}
		RegisterSubject []struct {
			Ctx   context.Context
			Input catalog.RegisterSubjectInput
		}
		IssueCode []struct {
			Ctx       context.Context
			SubjectID string
		}
	}
	lockResolveCode     sync.RWMutex
	lockRegisterSubject sync.RWMutex
	lockIssueCode       sync.RWMutex
}

func (mock *catalogServiceMock) ResolveCode(ctx context.Context, code string) (*domain.ScanTarget, error) {
	if mock.ResolveCodeFunc == nil {
		panic("catalogServiceMock.ResolveCodeFunc: method is nil but catalogService.ResolveCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockResolveCode.Lock()
	mock.calls.ResolveCode = append(mock.calls.ResolveCode, callInfo)
	mock.lockResolveCode.Unlock()
	return mock.ResolveCodeFunc(ctx, code)
}

func (mock *catalogServiceMock) ResolveCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockResolveCode.RLock()
	calls := mock.calls.ResolveCode
	mock.lockResolveCode.RUnlock()
	return calls
}

func (mock *catalogServiceMock) RegisterSubject(ctx context.Context, input catalog.RegisterSubjectInput) (*domain.Subject, error) {
	if mock.RegisterSubjectFunc == nil {
		panic("catalogServiceMock.RegisterSubjectFunc: method is nil but catalogService.RegisterSubject was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input catalog.RegisterSubjectInput
	}{Ctx: ctx, Input: input}
	mock.lockRegisterSubject.Lock()
	mock.calls.RegisterSubject = append(mock.calls.RegisterSubject, callInfo)
	mock.lockRegisterSubject.Unlock()
	return mock.RegisterSubjectFunc(ctx, input)
}

func (mock *catalogServiceMock) RegisterSubjectCalls() []struct {
	Ctx   context.Context
	Input catalog.RegisterSubjectInput
} {
	mock.lockRegisterSubject.RLock()
	calls := mock.calls.RegisterSubject
	mock.lockRegisterSubject.RUnlock()
	return calls
}

func (mock *catalogServiceMock) IssueCode(ctx context.Context, subjectID string) (*domain.ScanCode, error) {
	if mock.IssueCodeFunc == nil {
		panic("catalogServiceMock.IssueCodeFunc: method is nil but catalogService.IssueCode was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID string
	}{Ctx: ctx, SubjectID: subjectID}
	mock.lockIssueCode.Lock()
	mock.calls.IssueCode = append(mock.calls.IssueCode, callInfo)
	mock.lockIssueCode.Unlock()
	return mock.IssueCodeFunc(ctx, subjectID)
}

func (mock *catalogServiceMock) IssueCodeCalls() []struct {
	Ctx       context.Context
	SubjectID string
} {
	mock.lockIssueCode.RLock()
	calls := mock.calls.IssueCode
	mock.lockIssueCode.RUnlock()
	return calls
}
