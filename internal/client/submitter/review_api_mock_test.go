package submitter

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ reviewAPI = &reviewAPIMock{}

type reviewAPIMock struct {
	SubmitReviewFunc func(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error)

	calls struct {
		SubmitReview []struct {
			Ctx   context.Context
			Draft domain.ReviewDraft
		}
	}
	lockSubmitReview sync.RWMutex
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
