package review

import (
	"context"
	"fmt"
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// Quota is an identity's use of the daily cap on one UTC day.
type Quota struct {
	Identity  domain.RaterIdentity
	Day       time.Time
	Count     int
	Limit     int
	Remaining int
}

// Quota reports how many reviews identity may still submit today.
func (s *Service) Quota(ctx context.Context, identity string) (*Quota, error) {
	id, err := domain.ParseRaterIdentity(identity)
	if err != nil {
		return nil, err
	}

	limit, err := s.reviews.DailyCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("get daily cap: %w", err)
	}

	day := domain.ReviewDay(s.now())
	count, err := s.reviews.CountForDay(ctx, id, day)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return &Quota{
		Identity:  id,
		Day:       day,
		Count:     count,
		Limit:     limit,
		Remaining: max(limit-count, 0),
	}, nil
}

// ListBySubject returns a page of a subject's reviews, newest first.
func (s *Service) ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]*domain.Review, int, error) {
	if err := domain.ValidateSubjectID(subjectID); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	reviews, total, err := s.reviews.ListBySubject(ctx, subjectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}
