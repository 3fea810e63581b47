package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/service/review"
)

var _ reviewService = &reviewServiceMock{}

type reviewServiceMock struct {
	SubmitFunc        func(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error)
	SubmitBatchFunc   func(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error)
	QuotaFunc         func(ctx context.Context, identity string) (*review.Quota, error)
	ListBySubjectFunc func(ctx context.Context, subjectID string, limit int, offset int) ([]*domain.Review, int, error)

	calls struct {
		Submit []struct {
			Ctx   context.Context
			Draft domain.ReviewDraft
		}
		SubmitBatch []struct {
			Ctx    context.Context
			Drafts []domain.ReviewDraft
		}
		Quota []struct {
			Ctx      context.Context
			Identity string
		}
		ListBySubject []struct {
			Ctx       context.Context
			SubjectID string
			Limit     int
			Offset    int
		}
	}
	lockSubmit        sync.RWMutex
	lockSubmitBatch   sync.RWMutex
	lockQuota         sync.RWMutex
	lockListBySubject sync.RWMutex
}

func (mock *reviewServiceMock) Submit(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error) {
	if mock.SubmitFunc == nil {
		panic("reviewServiceMock.SubmitFunc: method is nil but reviewService.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Draft domain.ReviewDraft
	}{Ctx: ctx, Draft: draft}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, draft)
}

func (mock *reviewServiceMock) SubmitCalls() []struct {
	Ctx   context.Context
	Draft domain.ReviewDraft
} {
	mock.lockSubmit.RLock()
	calls := mock.calls.Submit
	mock.lockSubmit.RUnlock()
	return calls
}

func (mock *reviewServiceMock) SubmitBatch(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error) {
	if mock.SubmitBatchFunc == nil {
		panic("reviewServiceMock.SubmitBatchFunc: method is nil but reviewService.SubmitBatch was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Drafts []domain.ReviewDraft
	}{Ctx: ctx, Drafts: drafts}
	mock.lockSubmitBatch.Lock()
	mock.calls.SubmitBatch = append(mock.calls.SubmitBatch, callInfo)
	mock.lockSubmitBatch.Unlock()
	return mock.SubmitBatchFunc(ctx, drafts)
}

func (mock *reviewServiceMock) SubmitBatchCalls() []struct {
	Ctx    context.Context
	Drafts []domain.ReviewDraft
} {
	mock.lockSubmitBatch.RLock()
	calls := mock.calls.SubmitBatch
	mock.lockSubmitBatch.RUnlock()
	return calls
}

func (mock *reviewServiceMock) Quota(ctx context.Context, identity string) (*review.Quota, error) {
	if mock.QuotaFunc == nil {
		panic("reviewServiceMock.QuotaFunc: method is nil but reviewService.Quota was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Identity string
	}{Ctx: ctx, Identity: identity}
	mock.lockQuota.Lock()
	mock.calls.Quota = append(mock.calls.Quota, callInfo)
	mock.lockQuota.Unlock()
	return mock.QuotaFunc(ctx, identity)
}

func (mock *reviewServiceMock) QuotaCalls() []struct {
	Ctx      context.Context
	Identity string
} {
	mock.lockQuota.RLock()
	calls := mock.calls.Quota
	mock.lockQuota.RUnlock()
	return calls
}

func (mock *reviewServiceMock) ListBySubject(ctx context.Context, subjectID string, limit int, offset int) ([]*domain.Review, int, error) {
	if mock.ListBySubjectFunc == nil {
		panic("reviewServiceMock.ListBySubjectFunc: method is nil but reviewService.ListBySubject was just called")
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

func (mock *reviewServiceMock) ListBySubjectCalls() []struct {
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
