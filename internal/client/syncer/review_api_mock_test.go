package syncer

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ reviewAPI = &reviewAPIMock{}

type reviewAPIMock struct {
	SubmitBatchFunc  func(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error)
	SubmitReviewFunc func(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error)

	calls struct {
		SubmitBatch []struct {
			Ctx    context.Context
			Drafts []domain.ReviewDraft
		}
		SubmitReview []struct {
			Ctx   context.Context
			Draft domain.ReviewDraft
		}
	}
	lockSubmitBatch  sync.RWMutex
	lockSubmitReview sync.RWMutex
}

func (mock *reviewAPIMock) SubmitBatch(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error) {
	if mock.SubmitBatchFunc == nil {
		panic("reviewAPIMock.SubmitBatchFunc: method is nil but reviewAPI.SubmitBatch was just called")
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

func (mock *reviewAPIMock) SubmitBatchCalls() []struct {
	Ctx    context.Context
	Drafts []domain.ReviewDraft
} {
	mock.lockSubmitBatch.RLock()
	calls := mock.calls.SubmitBatch
	mock.lockSubmitBatch.RUnlock()
	return calls
}

func (mock *reviewAPIMock) SubmitReview(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error) {
	if mock.SubmitReviewFunc == nil {
		panic("reviewAPIMock.SubmitReviewFunc: method is nil but reviewAPI.SubmitReview was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Draft domain.ReviewDraft
	}{Ctx: ctx, Draft: draft}
	mock.lockSubmitReview.Lock()
	mock.calls.SubmitReview = append(mock.calls.SubmitReview, callInfo)
	mock.lockSubmitReview.Unlock()
	return mock.SubmitReviewFunc(ctx, draft)
}

func (mock *reviewAPIMock) SubmitReviewCalls() []struct {
	Ctx   context.Context
	Draft domain.ReviewDraft
} {
	mock.lockSubmitReview.RLock()
	calls := mock.calls.SubmitReview
	mock.lockSubmitReview.RUnlock()
	return calls
}
