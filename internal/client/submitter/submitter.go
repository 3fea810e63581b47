// Package submitter sends a freshly captured review to the API and falls back
// to the offline queue when the network is unavailable.
package submitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

type identityResolver interface {
	Resolve(ctx context.Context) (domain.RaterIdentity, error)
}

type reviewAPI interface {
	SubmitReview(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error)
}

type pendingQueue interface {
	Enqueue(ctx context.Context, draft domain.ReviewDraft) error
}

// Submitter is the client's single entry point for new reviews.
type Submitter struct {
	identity identityResolver
	api      reviewAPI
	queue    pendingQueue
	log      *slog.Logger
	newID    func() uuid.UUID
	now      func() time.Time
}

func New(identity identityResolver, api reviewAPI, queue pendingQueue, logger *slog.Logger) *Submitter {
	return &Submitter{
		identity: identity,
		api:      api,
		queue:    queue,
		log:      logger.With("component", "submitter"),
		newID:    uuid.New,
		now:      time.Now,
	}
}

// Submit fills in the submission id, capture time and rater identity when
// missing, validates the draft and sends it. Explicit rejections are returned
// as errors. A connectivity failure queues the draft and reports
// StatusQueued; the review is sent later by the sync reconciler.
func (s *Submitter) Submit(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error) {
	if draft.SubmissionID == uuid.Nil {
		draft.SubmissionID = s.newID()
	}
	if draft.CapturedAt.IsZero() {
		draft.CapturedAt = s.now().UTC()
	}
	if draft.RaterIdentity == "" {
		id, err := s.identity.Resolve(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve identity: %w", err)
		}
		draft.RaterIdentity = id
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.api.SubmitReview(ctx, draft)
	if err == nil {
		s.log.InfoContext(ctx, "review submitted",
			slog.String("submission_id", draft.SubmissionID.String()),
			slog.String("status", string(sub.Status)),
			slog.Int("points_awarded", sub.PointsAwarded),
		)
		return sub, nil
	}

	if !errors.Is(err, domain.ErrConnectivity) {
		return nil, err
	}

	s.log.WarnContext(ctx, "review send failed, queueing",
		slog.String("submission_id", draft.SubmissionID.String()),
		slog.String("error", err.Error()),
	)
	if qerr := s.queue.Enqueue(ctx, draft); qerr != nil {
		return nil, fmt.Errorf("queue review after %w: %w", err, qerr)
	}
	return &domain.Submission{SubmissionID: draft.SubmissionID, Status: domain.StatusQueued, Err: err}, nil
}
