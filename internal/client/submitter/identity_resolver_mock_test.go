package submitter

import (
	"context"
	"sync"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

var _ identityResolver = &identityResolverMock{}

type identityResolverMock struct {
	ResolveFunc func(ctx context.Context) (domain.RaterIdentity, error)

	calls struct {
		Resolve []struct {
			Ctx context.Context
		}
	}
	lockResolve sync.RWMutex
}

func (mock *identityResolverMock) Resolve(ctx context.Context) (domain.RaterIdentity, error) {
	if mock.ResolveFunc == nil {
		panic("identityResolverMock.ResolveFunc: method is nil but identityResolver.Resolve was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, callInfo)
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx)
}

func (mock *identityResolverMock) ResolveCalls() []struct {
	Ctx context.Context
} {
	mock.lockResolve.RLock()
	calls := mock.calls.Resolve
	mock.lockResolve.RUnlock()
	return calls
}
