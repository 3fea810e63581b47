// Package syncer replays the offline queue against the review API.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// DefaultBatchSize matches the server's default batch limit.
const DefaultBatchSize = 50

type reviewAPI interface {
	SubmitBatch(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error)
	SubmitReview(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error)
}

type pendingQueue interface {
	Drain(ctx context.Context) ([]domain.PendingReview, error)
	Ack(ctx context.Context, ids ...uuid.UUID) error
}

// Result summarises one reconcile pass.
type Result struct {
	Pending  int
	Accepted int
	Replayed int
	Rejected int
	Kept     int
}

// Acked is the number of entries removed from the queue.
func (r Result) Acked() int { return r.Accepted + r.Replayed + r.Rejected }

// Syncer is safe for concurrent use; reconcile passes never overlap.
type Syncer struct {
	mu        sync.Mutex
	api       reviewAPI
	queue     pendingQueue
	batchSize int
	log       *slog.Logger
}

// New creates a Syncer. A non-positive batchSize means DefaultBatchSize.
func New(api reviewAPI, queue pendingQueue, batchSize int, logger *slog.Logger) *Syncer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Syncer{
		api:       api,
		queue:     queue,
		batchSize: batchSize,
		log:       logger.With("component", "syncer"),
	}
}

// Run reconciles once and, if that pass acknowledged anything, once more to
// pick up reviews queued while it was in flight.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	first, err := s.Reconcile(ctx)
	if err != nil || first.Acked() == 0 {
		return first, err
	}
	second, err := s.Reconcile(ctx)
	if err != nil {
		return first, err
	}
	first.Accepted += second.Accepted
	first.Replayed += second.Replayed
	first.Rejected += second.Rejected
	first.Kept = second.Kept
	return first, nil
}

// Reconcile drains the queue and submits its entries in batches. Accepted,
// replayed and terminally rejected items are acknowledged one by one; items
// that failed for any other reason stay queued. A connectivity failure stops
// the pass and leaves every entry not yet answered untouched.
func (s *Syncer) Reconcile(ctx context.Context) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.queue.Drain(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("reconcile: %w", err)
	}
	res := Result{Pending: len(pending)}
	if len(pending) == 0 {
		return res, nil
	}

	for start := 0; start < len(pending); start += s.batchSize {
		end := min(start+s.batchSize, len(pending))
		chunk := pending[start:end]

		subs, err := s.submit(ctx, chunk)
		connErr := errors.Is(err, domain.ErrConnectivity)
		if err != nil && !connErr {
			return res, fmt.Errorf("reconcile: %w", err)
		}

		acked := make([]uuid.UUID, 0, len(subs))
		for i, sub := range subs {
			switch sub.Status {
			case domain.StatusAccepted:
				res.Accepted++
			case domain.StatusReplayed:
				res.Replayed++
			case domain.StatusRejected:
				res.Rejected++
				s.log.WarnContext(ctx, "queued review rejected",
					slog.String("submission_id", chunk[i].SubmissionID.String()),
					slog.String("error", errString(sub.Err)),
				)
			default:
				res.Kept++
				continue
			}
			acked = append(acked, chunk[i].SubmissionID)
		}

		if len(acked) > 0 {
			if err := s.queue.Ack(ctx, acked...); err != nil {
				return res, fmt.Errorf("reconcile: %w", err)
			}
		}

		if connErr {
			res.Kept += len(pending) - start - len(subs)
			s.log.InfoContext(ctx, "reconcile deferred, api unreachable",
				slog.Int("kept", res.Kept),
				slog.String("error", err.Error()),
			)
			break
		}
	}

	s.log.InfoContext(ctx, "reconcile finished",
		slog.Int("pending", res.Pending),
		slog.Int("accepted", res.Accepted),
		slog.Int("replayed", res.Replayed),
		slog.Int("rejected", res.Rejected),
		slog.Int("kept", res.Kept),
	)
	return res, nil
}

// submit sends one batch. When the server refuses the batch as a whole (for
// example one item fails request validation) the items are sent one at a
// time so a single bad entry cannot block the rest.
func (s *Syncer) submit(ctx context.Context, chunk []domain.PendingReview) ([]domain.Submission, error) {
	drafts := make([]domain.ReviewDraft, len(chunk))
	for i, p := range chunk {
		drafts[i] = p.ReviewDraft
	}

	subs, err := s.api.SubmitBatch(ctx, drafts)
	if err == nil {
		return subs, nil
	}
	if !errors.Is(err, domain.ErrValidation) {
		return nil, err
	}

	s.log.WarnContext(ctx, "batch refused, sending items individually", slog.String("error", err.Error()))
	subs = make([]domain.Submission, len(drafts))
	for i, d := range drafts {
		sub, err := s.api.SubmitReview(ctx, d)
		switch {
		case err == nil:
			subs[i] = *sub
		case domain.IsTerminal(err):
			subs[i] = domain.Submission{SubmissionID: d.SubmissionID, Status: domain.StatusRejected, Err: err}
		case errors.Is(err, domain.ErrConnectivity):
			// Stop here; the caller keeps everything from this item on.
			return subs[:i], err
		default:
			subs[i] = domain.Submission{SubmissionID: d.SubmissionID, Status: domain.StatusFailed, Err: err}
		}
	}
	return subs, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
